package timeline

import (
	"encoding/json"
	"fmt"

	"montage/internal/timing"
)

// MediaType tags the payload variant of a media item.
type MediaType string

const (
	TypeImage MediaType = "image"
	TypeText  MediaType = "text"
	TypeVideo MediaType = "video"
)

// Alignment is the horizontal alignment of a text payload.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Crop is a source rectangle in pixels.
type Crop struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Payload is the variant-specific data of a media item. It is implemented
// only by ImageData, TextData and VideoData.
type Payload interface {
	Kind() MediaType
	Accept(v PayloadVisitor)
	clonePayload() Payload
}

// PayloadVisitor handles every payload variant.
type PayloadVisitor interface {
	VisitImage(ImageData)
	VisitText(TextData)
	VisitVideo(VideoData)
}

// ImageData describes a still image.
type ImageData struct {
	Src     string   `json:"src"`
	Crop    *Crop    `json:"crop,omitempty"`
	Opacity *float64 `json:"opacity,omitempty"`
	Scale   *float64 `json:"scale,omitempty"`
}

// TextData describes a text overlay.
type TextData struct {
	Text       string    `json:"text"`
	Color      string    `json:"color"`
	FontSize   *float64  `json:"fontSize,omitempty"`
	FontFamily string    `json:"fontFamily,omitempty"`
	Alignment  Alignment `json:"alignment,omitempty"`
}

// VideoData describes a video clip. Duration is the intrinsic length captured
// at ingestion; Offset is where playback starts inside the source, set when a
// clip is split.
type VideoData struct {
	Src      string   `json:"src"`
	Crop     *Crop    `json:"crop,omitempty"`
	Volume   *float64 `json:"volume,omitempty"`
	Speed    *float64 `json:"speed,omitempty"`
	Duration *float64 `json:"duration,omitempty"`
	Offset   *float64 `json:"offset,omitempty"`
}

func (ImageData) Kind() MediaType { return TypeImage }
func (TextData) Kind() MediaType  { return TypeText }
func (VideoData) Kind() MediaType { return TypeVideo }

func (d ImageData) Accept(v PayloadVisitor) { v.VisitImage(d) }
func (d TextData) Accept(v PayloadVisitor)  { v.VisitText(d) }
func (d VideoData) Accept(v PayloadVisitor) { v.VisitVideo(d) }

func (d ImageData) clonePayload() Payload {
	d.Crop = cloneCrop(d.Crop)
	d.Opacity = clonePtr(d.Opacity)
	d.Scale = clonePtr(d.Scale)
	return d
}

func (d TextData) clonePayload() Payload {
	d.FontSize = clonePtr(d.FontSize)
	return d
}

func (d VideoData) clonePayload() Payload {
	d.Crop = cloneCrop(d.Crop)
	d.Volume = clonePtr(d.Volume)
	d.Speed = clonePtr(d.Speed)
	d.Duration = clonePtr(d.Duration)
	d.Offset = clonePtr(d.Offset)
	return d
}

// Match dispatches p to the handler for its variant.
func Match[T any](p Payload, onImage func(ImageData) T, onText func(TextData) T, onVideo func(VideoData) T) T {
	m := &matcher[T]{onImage: onImage, onText: onText, onVideo: onVideo}
	p.Accept(m)
	return m.out
}

type matcher[T any] struct {
	onImage func(ImageData) T
	onText  func(TextData) T
	onVideo func(VideoData) T
	out     T
}

func (m *matcher[T]) VisitImage(d ImageData) { m.out = m.onImage(d) }
func (m *matcher[T]) VisitText(d TextData)   { m.out = m.onText(d) }
func (m *matcher[T]) VisitVideo(d VideoData) { m.out = m.onVideo(d) }

// Media is a timed element placed on a track.
type Media struct {
	ID     string  `json:"id"`
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
	ZIndex int     `json:"zIndex"`
	Data   Payload `json:"data"`
}

// Type reports the payload variant.
func (m Media) Type() MediaType {
	if m.Data == nil {
		return ""
	}
	return m.Data.Kind()
}

// Segment returns the media extent.
func (m Media) Segment() timing.TimeSegment {
	return timing.TimeSegment{Start: m.Start, End: m.End}
}

// Duration returns End-Start.
func (m Media) Duration() float64 {
	return m.End - m.Start
}

// Clone returns a deep copy.
func (m Media) Clone() Media {
	if m.Data != nil {
		m.Data = m.Data.clonePayload()
	}
	return m
}

func (m Media) String() string {
	return fmt.Sprintf("%s %s [%.3f, %.3f)", m.Type(), m.ID, m.Start, m.End)
}

// Ptr returns a pointer to v, for filling optional payload fields.
func Ptr[T any](v T) *T {
	return &v
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneCrop(c *Crop) *Crop {
	return clonePtr(c)
}

// MarshalJSON includes the derived type tag alongside the payload.
func (m Media) MarshalJSON() ([]byte, error) {
	type plain Media
	return json.Marshal(struct {
		plain
		Type MediaType `json:"type"`
	}{plain: plain(m), Type: m.Type()})
}
