package snapshot

// MaxFeedPosts caps the per-entity feed; the oldest excess is discarded.
const MaxFeedPosts = 250

// UserKind classifies synthetic social accounts.
type UserKind string

const (
	UserFan      UserKind = "fan"
	UserHater    UserKind = "hater"
	UserRivalFan UserKind = "rival_fan"
	UserStats    UserKind = "stats"
)

// SocialUser is a synthetic account created on demand and reused by username.
type SocialUser struct {
	Username    string   `json:"username"`
	DisplayName string   `json:"displayName"`
	Kind        UserKind `json:"kind"`
}

// Post is one entry in an entity's social feed.
type Post struct {
	ID     string `json:"id"`
	Author string `json:"author"`
	Body   string `json:"body"`
	Week   Date   `json:"week"`
	Likes  int64  `json:"likes"`
}

// Message is one direct message in a thread.
type Message struct {
	From string `json:"from"`
	Body string `json:"body"`
	Week Date   `json:"week"`
}

// Appeal is an outstanding suspension appeal; it resolves exactly one turn
// after it is filed.
type Appeal struct {
	FiledOn Date   `json:"filedOn"`
	Cause   string `json:"cause"`
}

// Social is an entity's social-media identity and activity.
type Social struct {
	Username  string `json:"username"`
	Followers int64  `json:"followers"`

	Suspended       bool    `json:"suspended"`
	SuspensionCause string  `json:"suspensionCause,omitempty"`
	Appeal          *Appeal `json:"appeal,omitempty"`

	// FanWarRival is the rival fanbase name while a fan war is running.
	FanWarRival string `json:"fanWarRival,omitempty"`
	FanWarWeeks int    `json:"fanWarWeeks"`

	Posts     []Post                `json:"posts"`
	Users     map[string]SocialUser `json:"users"`
	Following []string              `json:"following"`
	Threads   map[string][]Message  `json:"threads"`
	Trends    []string              `json:"trends"`
}

// HasUser reports whether a synthetic account already exists.
func (s *Social) HasUser(username string) bool {
	_, ok := s.Users[username]
	return ok
}

// AddPost appends a post and discards the oldest beyond MaxFeedPosts.
func (s *Social) AddPost(post Post) {
	s.Posts = append(s.Posts, post)
	if excess := len(s.Posts) - MaxFeedPosts; excess > 0 {
		s.Posts = append([]Post(nil), s.Posts[excess:]...)
	}
}

// Email is one append-only inbox entry.
type Email struct {
	ID      string `json:"id"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Week    Date   `json:"week"`
	Read    bool   `json:"read"`
}
