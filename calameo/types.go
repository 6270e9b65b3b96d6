package calameo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// Int is an integer that also accepts quoted and empty JSON values. Bodies
// converted from XML carry every scalar as text.
type Int int64

// UnmarshalJSON implements json.Unmarshaler
func (i *Int) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*i = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*i = 0
			return nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer %q: %w", s, err)
		}
		*i = Int(n)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	v, err := n.Int64()
	if err != nil {
		return fmt.Errorf("invalid integer %s: %w", n, err)
	}
	*i = Int(v)
	return nil
}

// Time is a timestamp in the API's "YYYY-MM-DD hh:mm:ss" or "YYYY-MM-DD" form.
type Time struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Time) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
			t.Time = time.Time{}
			return nil
		}
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "0000-00-00") {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{dateTimeLayout, dateLayout, time.RFC3339} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

// MarshalJSON implements json.Marshaler
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(t.Format(dateTimeLayout))
}

// Account is the response of getAccountInfos.
type Account struct {
	ID          Int    `json:"ID"`
	Name        string `json:"Name"`
	City        string `json:"City"`
	Country     string `json:"Country"`
	WebsiteName string `json:"WebsiteName"`
	WebsiteURL  string `json:"WebsiteUrl"`
	PublicURL   string `json:"PublicUrl"`
}

// Subscription is a folder of publications.
type Subscription struct {
	ID           Int    `json:"ID"`
	AccountID    Int    `json:"AccountID"`
	Name         string `json:"Name"`
	Description  string `json:"Description"`
	Books        Int    `json:"Books"`
	Subscribers  Int    `json:"Subscribers"`
	Creation     Time   `json:"Creation"`
	Modification Time   `json:"Modification"`
	PublicURL    string `json:"PublicUrl"`
}

// Publication statuses
const (
	StatusQueue   = "QUEUE"
	StatusProcess = "PROCESS"
	StatusStore   = "STORE"
	StatusError   = "ERROR"
	StatusDone    = "DONE"
)

// Publication is a published document.
type Publication struct {
	ID             string `json:"ID"`
	SubscriptionID Int    `json:"SubscriptionID"`
	AccountID      Int    `json:"AccountID"`
	Name           string `json:"Name"`
	Description    string `json:"Description"`
	Category       string `json:"Category"`
	Format         string `json:"Format"`
	Dialect        string `json:"Dialect"`
	Status         string `json:"Status"`
	IsPublished    Int    `json:"IsPublished"`
	IsPrivate      Int    `json:"IsPrivate"`
	AuthID         string `json:"AuthID"`
	AllowMini      Int    `json:"AllowMini"`
	Pages          Int    `json:"Pages"`
	Width          Int    `json:"Width"`
	Height         Int    `json:"Height"`
	Views          Int    `json:"Views"`
	Date           Time   `json:"Date"`
	Creation       Time   `json:"Creation"`
	Modification   Time   `json:"Modification"`
	PictureURL     string `json:"PictureUrl"`
	ThumbURL       string `json:"ThumbUrl"`
	PublicURL      string `json:"PublicUrl"`
	ViewURL        string `json:"ViewUrl"`
	CommentsURL    string `json:"CommentsUrl"`
}

// IsDone reports whether conversion finished.
func (p *Publication) IsDone() bool {
	return p.Status == StatusDone
}

// Subscriber is a reader account attached to a subscription.
type Subscriber struct {
	AccountID      Int    `json:"AccountID"`
	SubscriptionID Int    `json:"SubscriptionID"`
	LastName       string `json:"LastName"`
	FirstName      string `json:"FirstName"`
	Email          string `json:"Email"`
	Login          string `json:"Login"`
	Password       string `json:"Password"`
	IsActive       Int    `json:"IsActive"`
	LastLogin      Time   `json:"LastLogin"`
	Creation       Time   `json:"Creation"`
	Modification   Time   `json:"Modification"`
	Extras         string `json:"Extras"`
}

// TocItem is one entry in a publication's table of contents.
type TocItem struct {
	Level      Int    `json:"Level"`
	Name       string `json:"Name"`
	PageNumber Int    `json:"PageNumber"`
}

// Comment is a reader comment on a publication.
type Comment struct {
	PosterID        Int    `json:"PosterID"`
	PosterName      string `json:"PosterName"`
	PosterPublicURL string `json:"PosterPublicUrl"`
	PosterThumbURL  string `json:"PosterThumbUrl"`
	Date            Time   `json:"Date"`
	Text            string `json:"Text"`
}

// List is one page of a listing action.
type List[T any] struct {
	Items []T `json:"items"`
	Total Int `json:"total"`
	Start Int `json:"start"`
	Step  Int `json:"step"`
}

// ListOptions are the optional sorting and range fields of listing actions.
type ListOptions struct {
	Order string // sort criterion, e.g. "Name" or "Creation"
	Way   string // "UP" (default) or "DOWN"
	Start int
	Step  int // at most MaxPageSize
}

func (o ListOptions) apply(fields Fields) Fields {
	if o.Order != "" {
		fields["order"] = o.Order
	}
	if o.Way != "" {
		fields["way"] = o.Way
	}
	if o.Step > 0 {
		fields["start"] = o.Start
		fields["step"] = o.Step
	} else if o.Start > 0 {
		fields["start"] = o.Start
	}
	return fields
}
