package models

import "time"

// Continent is the region a species is catalogued under.
type Continent string

const (
	NorthAmerica Continent = "North America"
	SouthAmerica Continent = "South America"
	Europe       Continent = "Europe"
	Africa       Continent = "Africa"
	Asia         Continent = "Asia"
	Australia    Continent = "Australia"
)

// AllContinents lists every continent the catalog knows about.
var AllContinents = []Continent{NorthAmerica, SouthAmerica, Europe, Africa, Asia, Australia}

// Valid reports whether c is one of AllContinents.
func (c Continent) Valid() bool {
	for _, k := range AllContinents {
		if c == k {
			return true
		}
	}
	return false
}

// DangerLevel is a severity label. It only drives display colour and filtering.
type DangerLevel string

const (
	Harmless       DangerLevel = "Harmless"
	MildlyVenomous DangerLevel = "Mildly Venomous"
	Venomous       DangerLevel = "Venomous"
	HighlyVenomous DangerLevel = "Highly Venomous"
	Deadly         DangerLevel = "Deadly"
)

// AllDangerLevels is ordered from least to most dangerous.
var AllDangerLevels = []DangerLevel{Harmless, MildlyVenomous, Venomous, HighlyVenomous, Deadly}

func (d DangerLevel) Valid() bool {
	for _, k := range AllDangerLevels {
		if d == k {
			return true
		}
	}
	return false
}

type Snake struct {
	ID                     string      `json:"id" yaml:"id"`
	Name                   string      `json:"name" yaml:"name" validate:"required"`
	ScientificName         string      `json:"scientific_name" yaml:"scientific_name" validate:"required"`
	Continent              Continent   `json:"continent" yaml:"continent" validate:"required,continent"`
	Countries              []string    `json:"countries" yaml:"countries" validate:"min=1,dive,required"`
	DangerLevel            DangerLevel `json:"danger_level" yaml:"danger_level" validate:"required,danger_level"`
	IsVenomous             bool        `json:"is_venomous" yaml:"is_venomous"`
	ImageURL               string      `json:"image_url" yaml:"image_url" validate:"omitempty,url"`
	Description            string      `json:"description" yaml:"description"`
	Habitat                []string    `json:"habitat" yaml:"habitat"`
	SizeRange              string      `json:"size_range" yaml:"size_range"`
	IdentificationFeatures []string    `json:"identification_features" yaml:"identification_features"`
	Behavior               string      `json:"behavior" yaml:"behavior"`
	Diet                   string      `json:"diet" yaml:"diet"`
	WhatToDo               []string    `json:"what_to_do" yaml:"what_to_do"`
	WhatNotToDo            []string    `json:"what_not_to_do" yaml:"what_not_to_do"`
	FirstAid               []string    `json:"first_aid" yaml:"first_aid"`
	InterestingFacts       []string    `json:"interesting_facts" yaml:"interesting_facts"`
	CreatedAt              time.Time   `json:"created_at" yaml:"created_at"`
}

// Clone returns a deep copy so callers can't mutate store-owned slices.
func (s Snake) Clone() Snake {
	s.Countries = cloneStrings(s.Countries)
	s.Habitat = cloneStrings(s.Habitat)
	s.IdentificationFeatures = cloneStrings(s.IdentificationFeatures)
	s.WhatToDo = cloneStrings(s.WhatToDo)
	s.WhatNotToDo = cloneStrings(s.WhatNotToDo)
	s.FirstAid = cloneStrings(s.FirstAid)
	s.InterestingFacts = cloneStrings(s.InterestingFacts)
	return s
}

type EmergencyInfo struct {
	ID               string    `json:"id" yaml:"id"`
	Title            string    `json:"title" yaml:"title" validate:"required"`
	Icon             string    `json:"icon" yaml:"icon"`
	Priority         int       `json:"priority" yaml:"priority" validate:"gte=1"`
	QuickSteps       []string  `json:"quick_steps" yaml:"quick_steps" validate:"min=1"`
	EmergencyNumbers []string  `json:"emergency_numbers" yaml:"emergency_numbers"`
	CreatedAt        time.Time `json:"created_at" yaml:"created_at"`
}

func (e EmergencyInfo) Clone() EmergencyInfo {
	e.QuickSteps = cloneStrings(e.QuickSteps)
	e.EmergencyNumbers = cloneStrings(e.EmergencyNumbers)
	return e
}

// ContinentCount is one row of the continent view.
type ContinentCount struct {
	Continent Continent `json:"continent"`
	Count     int       `json:"count"`
}

type Stats struct {
	TotalSnakes    int               `json:"total_snakes"`
	VenomousSnakes int               `json:"venomous_snakes"`
	DeadlySnakes   int               `json:"deadly_snakes"`
	Continents     map[Continent]int `json:"continents"`
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
