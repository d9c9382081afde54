/*
 * Copyright 2025 Wardrive Labs.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package classify maps free-text device names to canonical device types.
// Classification is best-effort enrichment over vendor strings; a miss is a
// fallback, never an error.
package classify

import (
	"strings"

	"github.com/wardrive/netmapper/pkg/models"
)

// rule pairs a device type with the name fragments that identify it.
type rule struct {
	deviceType models.DeviceType
	patterns   []string
}

// rules is evaluated in declaration order; the first matching entry wins,
// so a name matching two categories resolves deterministically.
var rules = []rule{
	{models.DeviceTypeCar, []string{
		"CAR", "FORD", "TOYOTA", "BMW", "TESLA", "SYNC", "MAZDA", "HONDA",
		"UCONNECT", "HYUNDAI", "LEXUS", "NISSAN", "MERCEDES", "AUDI", "VW",
		"VOLKSWAGEN", "CHEVROLET", "KIA", "SUBARU", "JEEP", "DODGE", "RAM",
	}},
	{models.DeviceTypeTV, []string{
		"TV", "BRAVIA", "VIZIO", "SAMSUNG", "LG", "ROKU", "FIRE", "SMARTVIEW",
		"KDL-", "ANDROIDTV", "CHROMECAST", "APPLETV", "HISENSE", "TCL", "SONY",
	}},
	{models.DeviceTypeHeadphone, []string{
		"HEADPHONE", "EARBUD", "BOSE", "SONY", "BEATS", "AUDIO", "AIRPOD",
		"JBL", "SENNHEISER", "JABRA", "SOUNDCORE", "ANKER", "SKULLCANDY",
	}},
	{models.DeviceTypeDashcam, []string{
		"DASHCAM", "DASH CAM", "DVR", "70MAI", "VIOFO", "GARMIN DASH",
		"BLACKVUE", "NEXTBASE", "THINKWARE",
	}},
	{models.DeviceTypeCamera, []string{
		"CAM", "SURVEILLANCE", "SECURITY", "NEST", "RING", "ARLO", "HIKVISION",
		"DAHUA", "REOLINK", "WYZE", "EUFY", "BLINK", "UNIFI", "AXIS",
	}},
	{models.DeviceTypeIOT, []string{
		"WATCH", "FITBIT", "GARMIN", "WHOOP", "IOT", "SMART", "ALEXA",
		"GOOGLE HOME", "ECHO", "SENSOR", "THERMOSTAT", "NEST", "ECOBEE",
	}},
}

// Classify returns the device type whose pattern set first matches the
// uppercased name, or fallback when the name is empty or nothing matches.
func Classify(name string, fallback models.DeviceType) models.DeviceType {
	if name == "" {
		return fallback
	}

	upper := strings.ToUpper(name)

	for _, r := range rules {
		for _, pattern := range r.patterns {
			if strings.Contains(upper, pattern) {
				return r.deviceType
			}
		}
	}

	return fallback
}

const unknownIcon = "❓"

var icons = map[models.DeviceType]string{
	models.DeviceTypeRouter:    "📡",
	models.DeviceTypeCar:       "🚗",
	models.DeviceTypeTV:        "📺",
	models.DeviceTypeHeadphone: "🎧",
	models.DeviceTypeDashcam:   "📹",
	models.DeviceTypeCamera:    "📷",
	models.DeviceTypeIOT:       "💡",
	models.DeviceTypeCellTower: "🗼",
	models.DeviceTypeBluetooth: "📶",
	models.DeviceTypeUnknown:   unknownIcon,
}

// Icon returns the display glyph for a device type. Total over the
// enumeration; anything outside it gets the unknown glyph.
func Icon(deviceType models.DeviceType) string {
	if icon, ok := icons[deviceType]; ok {
		return icon
	}

	return unknownIcon
}
