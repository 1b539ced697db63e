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

// Slack holds the per-axis tolerance bands around a species' ideal values.
// These are system-wide settings, not per-species.
type Slack struct {
	Brightness  float64
	Temperature float64
	Humidity    float64
}

// DefaultSlack matches the tolerances of the reference installation.
var DefaultSlack = Slack{
	Brightness:  0.5,
	Temperature: 2.0,
	Humidity:    5.0,
}

// Compare checks a reading against a target value within a tolerance band.
// It returns 0 when |value-target| <= slack, +1 when value exceeds
// target+slack, and -1 when value falls below target-slack.
func Compare(value, target, slack float64) int {
	switch {
	case value > target+slack:
		return 1
	case value < target-slack:
		return -1
	default:
		return 0
	}
}
