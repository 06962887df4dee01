// Package domain holds the pure shared types of the attention market.
// It has no infrastructure dependencies.
package domain

import "time"

// DurationBucket is one of the fixed trading-contract windows.
type DurationBucket string

const (
	Duration30m DurationBucket = "30m"
	Duration1h  DurationBucket = "1h"
	Duration3h  DurationBucket = "3h"

	// DefaultDuration is used by fallback analyses when the model did not
	// produce a usable recommendation.
	DefaultDuration = Duration1h
)

// durationMillis maps each bucket to its contract length.
var durationMillis = map[DurationBucket]int64{
	Duration30m: 1_800_000,
	Duration1h:  3_600_000,
	Duration3h:  10_800_000,
}

// Valid reports whether the bucket is one of the fixed windows.
func (d DurationBucket) Valid() bool {
	_, ok := durationMillis[d]
	return ok
}

// Millis returns the contract length in milliseconds, 0 for unknown buckets.
func (d DurationBucket) Millis() int64 {
	return durationMillis[d]
}

// Window returns the contract length as a time.Duration.
func (d DurationBucket) Window() time.Duration {
	return time.Duration(d.Millis()) * time.Millisecond
}

// Direction is the side of a mock trade.
type Direction string

const (
	DirectionLong  Direction = "long"
	DirectionShort Direction = "short"
)

// Valid reports whether the direction is long or short.
func (d Direction) Valid() bool {
	return d == DirectionLong || d == DirectionShort
}

// SourceCategory is the origin of a raw signal.
type SourceCategory string

const (
	SourceTwitter SourceCategory = "twitter"
	SourceReddit  SourceCategory = "reddit"
	SourceTikTok  SourceCategory = "tiktok"
	SourceYouTube SourceCategory = "youtube"
	SourceNews    SourceCategory = "news"
)

// Engagement carries optional counters attached to a signal.
type Engagement struct {
	Likes    int `json:"likes"`
	Shares   int `json:"shares"`
	Comments int `json:"comments"`
}

// RawSignal is a unit of raw social/news content to be analyzed. Immutable
// once received; produced by an external collector.
type RawSignal struct {
	ID         string         `json:"id"`
	Source     SourceCategory `json:"source"`
	Content    string         `json:"content"`
	Timestamp  time.Time      `json:"timestamp"`
	Engagement *Engagement    `json:"engagement,omitempty"`
}

// Market is one attention-market card as rendered by the dashboard.
type Market struct {
	MarketID  string  `json:"marketId"`
	Topic     string  `json:"topic"`
	Category  string  `json:"category"`
	Momentum  float64 `json:"momentum"`
	Change24h float64 `json:"change24h"`
	Volume    string  `json:"volume"`
	HypeScore int     `json:"hypeScore"`
}
