// Package venue holds the static venue content served by /api/venue.
package venue

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Feature is one highlighted aspect of the venue.
type Feature struct {
	Title string `yaml:"title" json:"title"`
	Text  string `yaml:"text" json:"text"`
}

// EquipmentCategory groups the house gear by kind.
type EquipmentCategory struct {
	Category string   `yaml:"category" json:"category"`
	Items    []string `yaml:"items" json:"items"`
}

// Contact lists the ways to reach the venue office.
type Contact struct {
	Phone       string `yaml:"phone" json:"phone"`
	Email       string `yaml:"email" json:"email"`
	OfficeHours string `yaml:"office_hours" json:"officeHours"`
}

// Info is the complete venue content.
type Info struct {
	Name       string              `yaml:"name" json:"name"`
	Tagline    string              `yaml:"tagline" json:"tagline"`
	About      string              `yaml:"about" json:"about"`
	Features   []Feature           `yaml:"features" json:"features"`
	Address    []string            `yaml:"address" json:"address"`
	Directions string              `yaml:"directions" json:"directions"`
	Contact    Contact             `yaml:"contact" json:"contact"`
	Equipment  []EquipmentCategory `yaml:"equipment" json:"equipment"`
}

// Default returns the built-in venue content.
func Default() *Info {
	return &Info{
		Name:    "LIVE SPACE GACHI D.I.Y.",
		Tagline: "～Diverse Innovative Yard～",
		About: "Established in 2024, LIVE SPACE GACHI D.I.Y. is Tokyo's premier destination for alternative sounds. " +
			"Located in the heart of Shibuya, we provide a sanctuary for artists and fans who live for the music.",
		Features: []Feature{
			{Title: "Sound", Text: "L-Acoustics K Series system tuned for maximum clarity and impact across all genres."},
			{Title: "Bar", Text: "Extensive selection of craft beers, spirits, and signature cocktails to keep the night flowing."},
			{Title: "Space", Text: "Industrial brutalist design with high ceilings and excellent sightlines from anywhere in the room."},
		},
		Address: []string{"B1F Sound Building, 2-14-8 Dogenzaka", "Shibuya-ku, Tokyo 150-0043"},
		Directions: "5 minutes walk from Shibuya Station (Hachiko Exit). " +
			"Walk up Dogenzaka street, turn right at the 109 building, " +
			"and we are located in the basement of the black building next to the convenience store.",
		Contact: Contact{
			Phone:       "03-1234-5678",
			Email:       "info@gachidiy-live.jp",
			OfficeHours: "14:00 - 22:00 (Mon-Fri)",
		},
		Equipment: []EquipmentCategory{
			{Category: "PA System", Items: []string{
				"Main Console: Yamaha CL5",
				"Main Speakers: L-Acoustics KARA (x6 per side)",
				"Subwoofers: L-Acoustics SB18 (x4)",
				"Monitor Console: Yamaha QL1",
				"Wedges: d&b audiotechnik M4 (x8)",
			}},
			{Category: "Microphones", Items: []string{
				"Shure SM58 (x10)",
				"Shure SM57 (x8)",
				"Sennheiser MD421 (x4)",
				"AKG C414 (x2)",
				"Shure Beta 52A (x2)",
			}},
			{Category: "Backline", Items: []string{
				"Guitar Amp: Marshall JCM900 + 1960A",
				"Guitar Amp: Roland JC-120",
				"Bass Amp: Ampeg SVT-3PRO + 810E",
				"Drums: Pearl Masters Maple Complete (22, 16, 13, 12)",
				"DJ: Pioneer CDJ-2000NXS2 (x2) + DJM-900NXS2",
			}},
			{Category: "Lighting", Items: []string{
				"Console: Avolites Tiger Touch II",
				"Moving Heads: Martin MAC Aura (x8)",
				"Spots: Clay Paky Mythos (x4)",
				"Strobes: Atomic 3000 (x2)",
				"Haze: Hazebase Base Hazer Pro",
			}},
		},
	}
}

// Load reads venue content from a YAML file.  An empty path or a missing
// file yields Default.  Fields absent from the file keep their defaults.
func Load(path string) (*Info, error) {
	info := Default()
	if path == "" {
		return info, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return info, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, info); err != nil {
		return nil, fmt.Errorf("parse venue file %s: %w", path, err)
	}
	return info, nil
}
