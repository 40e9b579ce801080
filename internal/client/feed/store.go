package feed

import (
	"strings"
	"sync"
	"time"
)

// Store is an ordered, newest-first sequence of posts.
type Store struct {
	mu     sync.Mutex
	posts  []*Post
	lastID int64
	now    func() time.Time
}

type Option func(*Store)

// WithClock overrides the time source used for ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// CreatePost prepends a new post and returns it. When content is blank and
// there is no image nothing happens and ok is false.
func (s *Store) CreatePost(content, image, author string) (post Post, ok bool) {
	if strings.TrimSpace(content) == "" && image == "" {
		return Post{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	p := &Post{
		ID:        s.nextID(now),
		Content:   content,
		Image:     image,
		Author:    author,
		Timestamp: now.Format(TimestampLayout),
		Comments:  []Comment{},
	}
	s.posts = append([]*Post{p}, s.posts...)
	return p.clone(), true
}

// nextID derives ids from the clock in milliseconds, bumping past the last
// id when two posts land in the same millisecond or the clock goes back.
func (s *Store) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// ToggleLike flips the like flag of the post with the given id and moves its
// counter by one. Unknown ids are ignored; the result reports whether a post
// was found.
func (s *Store) ToggleLike(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.posts {
		if p.ID != id {
			continue
		}
		if p.IsLiked {
			if p.Likes > 0 {
				p.Likes--
			}
		} else {
			p.Likes++
		}
		p.IsLiked = !p.IsLiked
		return true
	}
	return false
}

// Get returns a copy of one post.
func (s *Store) Get(id int64) (Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.ID == id {
			return p.clone(), true
		}
	}
	return Post{}, false
}

// Posts returns a snapshot, newest first.
func (s *Store) Posts() []Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, p.clone())
	}
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts)
}

// Clear drops every post. Called on sign-out.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = nil
}
