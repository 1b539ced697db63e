// Copyright 2026 The Plantstein Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package monitor

import (
	"fmt"

	"github.com/plantstein/plantstein/internal/plant"
)

// Alert is one human-readable deviation notice for one plant. Alerts are
// transient; they exist only for the duration of a tick or request.
type Alert struct {
	PlantID   string `json:"plantId"`
	PlantName string `json:"plantName"`
	Message   string `json:"message"`
}

// Checker evaluates one plant's conditions against its species' ideal values.
// It is a pure transformation of its inputs and safe for concurrent use.
type Checker struct {
	slack Slack
	bands Bands
}

// NewChecker creates a checker with the given tolerance configuration
func NewChecker(slack Slack, bands Bands) *Checker {
	return &Checker{slack: slack, bands: bands}
}

// Bands returns the moisture band configuration the checker aggregates with
func (c *Checker) Bands() Bands {
	return c.bands
}

// Evaluate produces at most one alert per axis, in brightness, temperature,
// humidity, moisture order. A MoistureUnknown state skips the moisture check;
// the ambient axes are always evaluated.
func (c *Checker) Evaluate(p *plant.Plant, reading plant.AmbientReading, moisture MoistureState) []Alert {
	var alerts []Alert

	if sign := Compare(reading.Brightness, p.Species.PerfectLight, c.slack.Brightness); sign != 0 {
		msg := fmt.Sprintf("It's not bright enough for %s!", p.Nickname)
		if sign > 0 {
			msg = fmt.Sprintf("It's too bright for %s!", p.Nickname)
		}
		alerts = append(alerts, Alert{PlantID: p.ID, PlantName: p.Nickname, Message: msg})
	}

	if sign := Compare(reading.Temperature, p.Species.PerfectTemperature, c.slack.Temperature); sign != 0 {
		msg := fmt.Sprintf("It's too cold for %s!", p.Nickname)
		if sign > 0 {
			msg = fmt.Sprintf("It's too hot for %s!", p.Nickname)
		}
		alerts = append(alerts, Alert{PlantID: p.ID, PlantName: p.Nickname, Message: msg})
	}

	if sign := Compare(reading.Humidity, p.Species.PerfectHumidity, c.slack.Humidity); sign != 0 {
		msg := fmt.Sprintf("The humidity isn't high enough for %s!", p.Nickname)
		if sign > 0 {
			msg = fmt.Sprintf("The humidity is too high for %s!", p.Nickname)
		}
		alerts = append(alerts, Alert{PlantID: p.ID, PlantName: p.Nickname, Message: msg})
	}

	switch moisture {
	case MoistureTooDry:
		alerts = append(alerts, Alert{PlantID: p.ID, PlantName: p.Nickname, Message: fmt.Sprintf("%s's soil is too dry!", p.Nickname)})
	case MoistureTooWet:
		alerts = append(alerts, Alert{PlantID: p.ID, PlantName: p.Nickname, Message: fmt.Sprintf("%s's soil is too wet!", p.Nickname)})
	}

	return alerts
}
