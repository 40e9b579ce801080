// Package feed is the in-memory post feed of the signed-in user. Nothing in
// it is persisted or sent over the network; the feed lives and dies with the
// session.
package feed

// TimestampLayout renders post times the way the web client did
// (en-US locale string).
const TimestampLayout = "1/2/2006, 3:04:05 PM"

type Comment struct {
	Author    string
	Text      string
	Timestamp string
}

type Post struct {
	ID        int64
	Content   string
	Image     string // data URI, empty when the post has no picture
	Author    string
	Timestamp string
	Likes     int
	Comments  []Comment
	IsLiked   bool
}

func (p *Post) clone() Post {
	c := *p
	c.Comments = append([]Comment{}, p.Comments...)
	return c
}
