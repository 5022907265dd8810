// Package persona holds the fixed catalog of voice personas and narrative tones.
package persona

import (
	"strconv"
	"strings"
)

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// VoicePersona is a named voice configuration. Personas are never created at
// runtime, only selected.
type VoicePersona struct {
	ID          string
	Name        string
	VoiceName   string // provider-recognized voice name
	Description string
	Gender      Gender
	Style       string
}

const DefaultID = "puck"

var catalog = []VoicePersona{
	{
		ID:          "kore",
		Name:        "Kore (The Professional)",
		VoiceName:   "Kore",
		Description: "Crisp, authoritative, and fast-paced. Perfect for hard news.",
		Gender:      Male,
		Style:       "Breaking News",
	},
	{
		ID:          "puck",
		Name:        "Puck (The Insider)",
		VoiceName:   "Puck",
		Description: "Playful, gossipy, and high-energy. Ideal for red carpet tea.",
		Gender:      Female,
		Style:       "Celebrity Gossip",
	},
	{
		ID:          "zephyr",
		Name:        "Zephyr (The Smooth)",
		VoiceName:   "Zephyr",
		Description: "Cool, calm, and collected. Best for fashion reviews.",
		Gender:      Male,
		Style:       "Lifestyle",
	},
	{
		ID:          "charon",
		Name:        "Charon (The Deep)",
		VoiceName:   "Charon",
		Description: "Gravelly and serious. Perfect for celebrity scandals.",
		Gender:      Male,
		Style:       "Investigation",
	},
	{
		ID:          "fenrir",
		Name:        "Fenrir (The Youth)",
		VoiceName:   "Fenrir",
		Description: "Young, energetic, and relatable. Great for TikTok news.",
		Gender:      Female,
		Style:       "Trending",
	},
}

// Catalog returns a copy of all personas in display order.
func Catalog() []VoicePersona {
	out := make([]VoicePersona, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a persona by id (case-insensitive).
func Lookup(id string) (VoicePersona, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, p := range catalog {
		if p.ID == id {
			return p, true
		}
	}
	return VoicePersona{}, false
}

func Default() VoicePersona {
	p, _ := Lookup(DefaultID)
	return p
}

const DefaultTone = "Excited and Gossipy"

var tones = []string{
	DefaultTone,
	"Serious Investigative",
	"Fashion Enthusiast",
	"Breaking News Alert",
}

func Tones() []string {
	out := make([]string, len(tones))
	copy(out, tones)
	return out
}

// ResolveTone accepts a 1-based index into Tones or a tone name, ignoring case.
func ResolveTone(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(tones) {
			return tones[n-1], true
		}
		return "", false
	}
	for _, t := range tones {
		if strings.EqualFold(t, input) {
			return t, true
		}
	}
	return "", false
}

// InitialScript seeds the editor before anything has been drafted.
const InitialScript = "Breaking news from the hills! Last night at the Met Gala, a certain superstar made a surprise appearance that has everyone talking. Let's dive into the details of the dress that broke the internet."
