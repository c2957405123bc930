package busserver

import (
	"github.com/godbus/dbus/v5"

	"notid/internal/logging"
	"notid/internal/notification"
)

// ParseHints converts the wire-level a{sv} map into the typed Hints
// structure. A hint whose value has the wrong type is dropped with a log
// line and the default stands; keys this server has no meaning for are
// kept verbatim in Unknown.
func ParseHints(raw map[string]dbus.Variant) notification.Hints {
	h := notification.Hints{Urgency: notification.UrgencyNormal}

	for key, variant := range raw {
		switch key {
		case "urgency":
			if v, ok := asByte(variant); ok && v <= 2 {
				h.Urgency = notification.Urgency(v)
			} else {
				logging.Warnf("busserver: dropping malformed urgency hint %v", variant.Value())
			}
		case "category":
			h.Category = asStringOr(variant, key, h.Category)
		case "image-data", "image_data":
			if img, ok := asImageData(variant); ok {
				h.ImageData = img
			} else {
				logging.Warnf("busserver: dropping malformed %s hint", key)
			}
		case "image-path", "image_path":
			h.ImagePath = asStringOr(variant, key, h.ImagePath)
		case "sound-file":
			h.SoundFile = asStringOr(variant, key, h.SoundFile)
		case "sound-name":
			h.SoundName = asStringOr(variant, key, h.SoundName)
		case "suppress-sound":
			h.SuppressSound = asBoolOr(variant, key, h.SuppressSound)
		case "resident":
			h.Resident = asBoolOr(variant, key, h.Resident)
		case "transient":
			h.Transient = asBoolOr(variant, key, h.Transient)
		case "action-icons":
			h.ActionIcons = asBoolOr(variant, key, h.ActionIcons)
		case "desktop-entry":
			h.DesktopEntry = asStringOr(variant, key, h.DesktopEntry)
		case "schedule-time":
			h.ScheduleTime = asStringOr(variant, key, h.ScheduleTime)
		default:
			if h.Unknown == nil {
				h.Unknown = make(map[string]any)
			}
			h.Unknown[key] = variant.Value()
		}
	}
	return h
}

func asByte(v dbus.Variant) (byte, bool) {
	switch value := v.Value().(type) {
	case byte:
		return value, true
	case int32:
		// Some senders pass urgency as i instead of y.
		if value >= 0 && value <= 255 {
			return byte(value), true
		}
	case uint32:
		if value <= 255 {
			return byte(value), true
		}
	}
	return 0, false
}

func asStringOr(v dbus.Variant, key, fallback string) string {
	if s, ok := v.Value().(string); ok {
		return s
	}
	logging.Warnf("busserver: dropping malformed %s hint %v", key, v.Value())
	return fallback
}

func asBoolOr(v dbus.Variant, key string, fallback bool) bool {
	if b, ok := v.Value().(bool); ok {
		return b
	}
	logging.Warnf("busserver: dropping malformed %s hint %v", key, v.Value())
	return fallback
}

// asImageData decodes the (iiibiiay) structured pixel-buffer hint.
func asImageData(v dbus.Variant) (*notification.ImageData, bool) {
	fields, ok := v.Value().([]any)
	if !ok || len(fields) != 7 {
		return nil, false
	}

	width, ok0 := fields[0].(int32)
	height, ok1 := fields[1].(int32)
	rowstride, ok2 := fields[2].(int32)
	hasAlpha, ok3 := fields[3].(bool)
	bits, ok4 := fields[4].(int32)
	channels, ok5 := fields[5].(int32)
	data, ok6 := fields[6].([]byte)
	if !(ok0 && ok1 && ok2 && ok3 && ok4 && ok5 && ok6) {
		return nil, false
	}
	if width <= 0 || height <= 0 || rowstride <= 0 || bits != 8 || (channels != 3 && channels != 4) {
		return nil, false
	}
	if len(data) < int(rowstride)*(int(height)-1)+int(width)*int(channels) {
		return nil, false
	}

	return &notification.ImageData{
		Width:         int(width),
		Height:        int(height),
		Rowstride:     int(rowstride),
		HasAlpha:      hasAlpha,
		BitsPerSample: int(bits),
		Channels:      int(channels),
		Data:          data,
	}, true
}

// ParseActions pairs up the flat [key, label, key, label, ...] wire array;
// a trailing key without a label is dropped.
func ParseActions(wire []string) []notification.Action {
	var actions []notification.Action
	for i := 0; i+1 < len(wire); i += 2 {
		actions = append(actions, notification.Action{Key: wire[i], Label: wire[i+1]})
	}
	if len(wire)%2 != 0 {
		logging.Warnf("busserver: dropping trailing action key %q without a label", wire[len(wire)-1])
	}
	return actions
}
