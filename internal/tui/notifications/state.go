package notifications

// Notification is a single message shown in the header until dismissed
type Notification struct {
	ID       int
	Severity Severity
	Message  string
}

// State holds the live notifications, newest last
type State struct {
	items  []Notification
	nextID int
}

// NewState creates an empty notification state
func NewState() *State {
	return &State{}
}

// Add appends a notification and returns its ID, used to dismiss it later
func (s *State) Add(severity Severity, message string) int {
	s.nextID++
	s.items = append(s.items, Notification{ID: s.nextID, Severity: severity, Message: message})
	return s.nextID
}

// Dismiss removes the notification with the given ID, if still present
func (s *State) Dismiss(id int) {
	for i, n := range s.items {
		if n.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Latest returns the most recent notification
func (s *State) Latest() (Notification, bool) {
	if len(s.items) == 0 {
		return Notification{}, false
	}
	return s.items[len(s.items)-1], true
}

// Len returns the number of live notifications
func (s *State) Len() int {
	return len(s.items)
}
