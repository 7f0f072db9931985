package composition

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"montage/internal/timeline"
)

// Background is painted behind every frame.
const Background = "black"

// Frame is everything visible at one frame index, in paint order.
type Frame struct {
	Index      int     `json:"index"`
	Time       float64 `json:"time"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Background string  `json:"background"`

	// NoContent is set when the timeline holds no media at all.
	NoContent bool    `json:"noContent"`
	Layers    []Layer `json:"layers"`
}

// Empty reports whether nothing is drawn even though the timeline has media.
func (f Frame) Empty() bool {
	return !f.NoContent && len(f.Layers) == 0
}

// Digest fingerprints the frame's canonical JSON encoding.
func (f Frame) Digest() string {
	raw, err := json.Marshal(f)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// Layer is one active media item with its resolved presentation.
type Layer struct {
	MediaID    string             `json:"mediaId"`
	TrackID    string             `json:"trackId"`
	TrackIndex int                `json:"trackIndex"`
	Type       timeline.MediaType `json:"type"`
	ZIndex     int                `json:"zIndex"`

	// From and DurationInFrames are the media's frame window.
	From             int `json:"from"`
	DurationInFrames int `json:"durationInFrames"`

	// Interactive is false on locked tracks; the renderer must suppress
	// pointer and selection events for the layer.
	Interactive bool `json:"interactive"`
	Selected    bool `json:"selected"`

	SelectionOpacity float64 `json:"selectionOpacity"`
	ContentOpacity   float64 `json:"contentOpacity"`
	Opacity          float64 `json:"opacity"`

	Src   string     `json:"src,omitempty"`
	Box   *Box       `json:"box,omitempty"`
	Text  *TextStyle `json:"text,omitempty"`
	Video *VideoPlay `json:"video,omitempty"`
}

// Box places a visual source inside the frame. Without a crop the source
// fills the frame; with one it is sized to the crop and shifted by its origin.
type Box struct {
	Fill       bool    `json:"fill"`
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	TranslateX float64 `json:"translateX"`
	TranslateY float64 `json:"translateY"`
	Scale      float64 `json:"scale"`
	ObjectFit  string  `json:"objectFit"`
}

// TextStyle is the resolved style of a text layer.
type TextStyle struct {
	Text       string             `json:"text"`
	Color      string             `json:"color"`
	FontSize   float64            `json:"fontSize"`
	FontFamily string             `json:"fontFamily"`
	FontWeight string             `json:"fontWeight"`
	Alignment  timeline.Alignment `json:"alignment"`
}

// VideoPlay is the resolved playback of a video layer at this frame.
type VideoPlay struct {
	Volume      float64 `json:"volume"`
	Speed       float64 `json:"speed"`
	SourceTime  float64 `json:"sourceTime"`
	SourceFrame int     `json:"sourceFrame"`
}
