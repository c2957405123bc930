// Package notification defines the immutable notification value and its
// typed hints, as accepted by the bus server and consumed by the renderer.
package notification

// Urgency is the bus-level urgency hint, driving which theme a banner uses.
type Urgency byte

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Action is a single {key, label} pair from the Notify call's actions array.
// The conventional key "default" is invoked on left-click.
type Action struct {
	Key   string
	Label string
}

const DefaultActionKey = "default"

// ImageData is the decoded structured pixel-buffer hint (image-data /
// image_data), carried verbatim until imgsrc resolves it.
type ImageData struct {
	Width, Height int
	Rowstride     int
	HasAlpha      bool
	BitsPerSample int
	Channels      int
	Data          []byte
}

// TimeoutKind selects how ExpireTimeout.Milliseconds should be interpreted.
type TimeoutKind int

const (
	TimeoutDefault TimeoutKind = iota
	TimeoutNever
	TimeoutMilliseconds
)

// ExpireTimeout is the request's expire_timeout, already classified out of
// the wire encoding (-1 = Default, 0 = Never, >0 = Milliseconds(n)).
type ExpireTimeout struct {
	Kind         TimeoutKind
	Milliseconds uint32
}

// FromWire classifies the raw i32 expire_timeout argument.
func FromWire(v int32) ExpireTimeout {
	switch {
	case v < 0:
		return ExpireTimeout{Kind: TimeoutDefault}
	case v == 0:
		return ExpireTimeout{Kind: TimeoutNever}
	default:
		return ExpireTimeout{Kind: TimeoutMilliseconds, Milliseconds: uint32(v)}
	}
}

// Effective resolves the timeout to a millisecond duration against a
// configured default, or reports that the notification never expires.
func (e ExpireTimeout) Effective(defaultMs uint32) (ms uint32, never bool) {
	switch e.Kind {
	case TimeoutNever:
		return 0, true
	case TimeoutMilliseconds:
		return e.Milliseconds, false
	default:
		return defaultMs, false
	}
}

// Hints is the typed subset of a{sv} hints this server understands.
// Unknown hint keys are preserved verbatim in Unknown so persistence and
// forwarding round-trip them.
type Hints struct {
	Urgency       Urgency
	Category      string
	ImageData     *ImageData
	ImagePath     string
	SoundFile     string
	SoundName     string
	SuppressSound bool
	Resident      bool
	Transient     bool
	ActionIcons   bool
	DesktopEntry  string
	ScheduleTime  string // raw schedule-time hint ("5m", RFC3339); empty when absent
	Unknown       map[string]any
}

// Notification is the immutable record passed from the bus server to the
// renderer. Replacement produces a new value with the same ID rather than
// mutating fields in place.
type Notification struct {
	ID         uint32
	ReplacesID uint32
	AppName    string
	AppIcon    string
	Summary    string
	Body       Markup
	Actions    []Action
	Hints      Hints
	Expire     ExpireTimeout
	CreatedAt  int64
	IsRead     bool
}

// New builds a Notification from bus-call arguments, parsing body markup and
// classifying the expire_timeout.
func New(id uint32, appName, appIcon, summary, rawBody string, actions []Action, hints Hints, expireTimeout int32, createdAt int64) Notification {
	return Notification{
		ID:        id,
		AppName:   appName,
		AppIcon:   appIcon,
		Summary:   summary,
		Body:      Parse(rawBody),
		Actions:   actions,
		Hints:     hints,
		Expire:    FromWire(expireTimeout),
		CreatedAt: createdAt,
	}
}

// DefaultAction reports whether the notification carries a "default" action,
// and its label if so.
func (n *Notification) DefaultAction() (Action, bool) {
	for _, a := range n.Actions {
		if a.Key == DefaultActionKey {
			return a, true
		}
	}
	return Action{}, false
}

// IsExpired reports whether the notification should be destroyed given the
// elapsed time since createdAt, in milliseconds, against a configured
// default timeout.
func (n *Notification) IsExpired(elapsedMs, defaultMs uint32) bool {
	ms, never := n.Expire.Effective(defaultMs)
	if never {
		return false
	}
	return elapsedMs >= ms
}
