package scenarios

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/confsched/core/model"
)

type SessionDef struct {
	Code     string `yaml:"code"`
	Room     string `yaml:"room"`
	Start    string `yaml:"start"`
	End      string `yaml:"end"`
	Duration *int   `yaml:"duration,omitempty"`
}

// ToModel converts the definition. Duration defaults to the slot length.
func (s SessionDef) ToModel() (model.Session, error) {
	start, err := model.ParseTimestamp(s.Start)
	if err != nil {
		return model.Session{}, err
	}
	end, err := model.ParseTimestamp(s.End)
	if err != nil {
		return model.Session{}, err
	}
	slot := &model.Slot{Start: start, End: end, Room: s.Room, StartRaw: s.Start}
	dur := slot.Minutes()
	if s.Duration != nil {
		dur = *s.Duration
	}
	return model.Session{Code: s.Code, Title: s.Code, Duration: dur, Slot: slot}, nil
}

type CellDef struct {
	Row     string `yaml:"row"`
	Room    string `yaml:"room"`
	Kind    string `yaml:"kind"`
	Code    string `yaml:"code,omitempty"`
	RowSpan int    `yaml:"rowspan"`
}

type Expected struct {
	Rows         int       `yaml:"rows"`
	Labels       []string  `yaml:"labels,omitempty"`
	Cells        []CellDef `yaml:"cells,omitempty"`
	MissingRooms []string  `yaml:"missing_rooms,omitempty"`
}

type Scenario struct {
	Name            string       `yaml:"name"`
	Description     string       `yaml:"description,omitempty"`
	Day             string       `yaml:"day"`
	Rooms           []string     `yaml:"rooms"`
	TimeslotMinutes int          `yaml:"timeslot_minutes"`
	Sessions        []SessionDef `yaml:"sessions"`
	Expected        Expected     `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}
