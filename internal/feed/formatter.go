package feed

import (
	"encoding/xml"
	"fmt"
	"path"
	"strings"
	"time"

	"castbuzz/internal/models"

	"github.com/pkg/errors"
)

// Options tunes feed output. Divergences between the old builders (Google
// Play tags in one of them, languages in another) are configuration here,
// not separate code paths.
type Options struct {
	// Language is the channel language. Defaults to "en-us".
	Language string
	// TTL is the channel ttl in minutes. Defaults to 60.
	TTL int
	// IncludeGooglePlay adds the googleplay namespace and channel image tag.
	IncludeGooglePlay bool
}

// Formatter renders a show and its episodes as an RSS 2.0 / iTunes feed.
//
// Callers must pass only published episodes, already sorted by publish date
// descending; the formatter does not re-filter or re-sort.
type Formatter struct {
	baseURL string
	opts    Options
	now     func() time.Time
}

func NewFormatter(baseURL string, opts Options) *Formatter {
	if opts.Language == "" {
		opts.Language = "en-us"
	}
	if opts.TTL == 0 {
		opts.TTL = 60
	}
	return &Formatter{
		baseURL: strings.TrimRight(baseURL, "/"),
		opts:    opts,
		now:     time.Now,
	}
}

type cdataString struct {
	Text string `xml:",cdata"`
}

type rssImage struct {
	URL   string `xml:"url"`
	Title string `xml:"title"`
	Link  string `xml:"link"`
}

type itunesImage struct {
	Href string `xml:"href,attr"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type rssEnclosure struct {
	URL    string `xml:"url,attr"`
	Length int64  `xml:"length,attr"`
	Type   string `xml:"type,attr"`
}

type rssItem struct {
	Title       string       `xml:"title"`
	Link        string       `xml:"link"`
	GUID        rssGUID      `xml:"guid"`
	Description string       `xml:"description"`
	Content     *cdataString `xml:"content:encoded,omitempty"`
	PubDate     string       `xml:"pubDate,omitempty"`
	Enclosure   rssEnclosure `xml:"enclosure"`
	Duration    string       `xml:"itunes:duration"`
	Image       *itunesImage `xml:"itunes:image,omitempty"`
	Season      int          `xml:"itunes:season,omitempty"`
	Episode     int          `xml:"itunes:episode,omitempty"`
}

type rssChannel struct {
	Title         string       `xml:"title"`
	Link          string       `xml:"link"`
	Description   string       `xml:"description"`
	Language      string       `xml:"language"`
	Generator     string       `xml:"generator"`
	LastBuildDate string       `xml:"lastBuildDate"`
	PubDate       string       `xml:"pubDate"`
	TTL           int          `xml:"ttl"`
	Image         rssImage     `xml:"image"`
	Summary       *cdataString `xml:"itunes:summary,omitempty"`
	ItunesImage   itunesImage  `xml:"itunes:image"`
	GPImage       *itunesImage `xml:"googleplay:image,omitempty"`
	Items         []rssItem    `xml:"item"`
}

type rssDocument struct {
	XMLName      xml.Name   `xml:"rss"`
	Version      string     `xml:"version,attr"`
	ItunesNS     string     `xml:"xmlns:itunes,attr"`
	ContentNS    string     `xml:"xmlns:content,attr"`
	GoogleplayNS string     `xml:"xmlns:googleplay,attr,omitempty"`
	Channel      rssChannel `xml:"channel"`
}

const generatorName = "CastBuzz"

// BuildFeed renders the complete feed document. For identical inputs and a
// fixed clock the output is byte-identical.
func (f *Formatter) BuildFeed(show *models.Show, episodes []models.Episode) (string, error) {
	now := f.now().UTC()

	description := fmt.Sprintf("Listen to episodes of %s on CastBuzz.", show.Name)
	if show.Description != nil && *show.Description != "" {
		description = *show.Description
	}

	imageURL := f.baseURL + "/static/img/default-cover.png"
	if show.ImageURL != nil && *show.ImageURL != "" {
		imageURL = *show.ImageURL
	}

	showLink := fmt.Sprintf("%s/show/%s", f.baseURL, show.Slug)

	pubDate := now
	if len(episodes) > 0 && episodes[0].PublishDate != nil {
		pubDate = episodes[0].PublishDate.UTC()
	}

	channel := rssChannel{
		Title:         show.Name,
		Link:          showLink,
		Description:   description,
		Language:      f.opts.Language,
		Generator:     generatorName,
		LastBuildDate: now.Format(time.RFC1123Z),
		PubDate:       pubDate.Format(time.RFC1123Z),
		TTL:           f.opts.TTL,
		Image:         rssImage{URL: imageURL, Title: show.Name, Link: showLink},
		Summary:       &cdataString{Text: description},
		ItunesImage:   itunesImage{Href: imageURL},
	}
	if f.opts.IncludeGooglePlay {
		channel.GPImage = &itunesImage{Href: imageURL}
	}

	for _, ep := range episodes {
		channel.Items = append(channel.Items, f.buildItem(show, ep))
	}

	doc := rssDocument{
		Version:   "2.0",
		ItunesNS:  "http://www.itunes.com/dtds/podcast-1.0.dtd",
		ContentNS: "http://purl.org/rss/1.0/modules/content/",
		Channel:   channel,
	}
	if f.opts.IncludeGooglePlay {
		doc.GoogleplayNS = "http://www.google.com/schemas/play-podcasts/1.0"
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "marshaling feed")
	}
	return xml.Header + string(out), nil
}

func (f *Formatter) buildItem(show *models.Show, ep models.Episode) rssItem {
	// The episode page URL is permanent and never reused, so it doubles as
	// the item GUID.
	episodeLink := fmt.Sprintf("%s/show/%s/%s", f.baseURL, show.Slug, ep.Slug)

	item := rssItem{
		Title: ep.Title,
		Link:  episodeLink,
		GUID:  rssGUID{IsPermaLink: true, Value: episodeLink},
		Enclosure: rssEnclosure{
			URL:  ep.AudioURL,
			Type: mimeTypeFor(ep.AudioURL),
		},
		Duration: FormatDuration(ep.Duration),
	}

	if ep.Description != nil && *ep.Description != "" {
		item.Description = *ep.Description
		item.Content = &cdataString{
			Text: strings.ReplaceAll(*ep.Description, "\n", "<br/>"),
		}
	}
	if ep.AudioSizeBytes != nil {
		item.Enclosure.Length = *ep.AudioSizeBytes
	}
	if ep.PublishDate != nil {
		item.PubDate = ep.PublishDate.UTC().Format(time.RFC1123Z)
	}
	if ep.ImageURL != nil && *ep.ImageURL != "" {
		item.Image = &itunesImage{Href: *ep.ImageURL}
	}
	if ep.SeasonNumber != nil && *ep.SeasonNumber > 0 {
		item.Season = *ep.SeasonNumber
	}
	if ep.EpisodeNumber != nil && *ep.EpisodeNumber > 0 {
		item.Episode = *ep.EpisodeNumber
	}

	return item
}

var audioMIMETypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
}

func mimeTypeFor(audioURL string) string {
	u := audioURL
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	if t, ok := audioMIMETypes[strings.ToLower(path.Ext(u))]; ok {
		return t
	}
	return "audio/mpeg"
}
