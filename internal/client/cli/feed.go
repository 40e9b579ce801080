package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/cooksocial/internal/client/feed"
)

// imageDataURI is a test seam for feed.ImageDataURI.
var imageDataURI = feed.ImageDataURI

// Post asks for the text and an optional picture and prepends the post to
// the feed. A post with neither is dropped.
func (a *App) Post(ctx context.Context) error {
	content, err := getMultiline(a.reader, "Share your delicious creation...", a.out)
	if err != nil {
		return err
	}
	path, err := getSimpleText(a.reader, "Image file (optional)", a.out)
	if err != nil {
		return err
	}

	var image string
	if path != "" {
		image, err = imageDataURI(path)
		if err != nil {
			fmt.Fprintf(a.out, "Could not attach image: %v\n", err)
			return err
		}
	}

	s, _ := a.auth.Session()
	p, ok := a.feed.CreatePost(content, image, s.Username)
	if !ok {
		fmt.Fprintln(a.out, "Nothing to post")
		return nil
	}
	fmt.Fprintf(a.out, "Posted #%d\n", p.ID)
	return nil
}

// Like toggles the like of post id. Unknown ids are ignored.
func (a *App) Like(ctx context.Context, id string) error {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: like <id>")
		return err
	}
	if !a.feed.ToggleLike(n) {
		return nil
	}
	if p, ok := a.feed.Get(n); ok {
		a.printPost(p)
	}
	return nil
}

func (a *App) Feed(ctx context.Context) error {
	posts := a.feed.Posts()
	if len(posts) == 0 {
		fmt.Fprintln(a.out, "No posts yet. Share something with 'post'.")
		return nil
	}
	for _, p := range posts {
		a.printPost(p)
	}
	return nil
}

func (a *App) printPost(p feed.Post) {
	fmt.Fprintf(a.out, "#%d  %s  ·  %s\n", p.ID, p.Author, p.Timestamp)
	if p.Content != "" {
		fmt.Fprintln(a.out, p.Content)
	}
	if p.Image != "" {
		fmt.Fprintf(a.out, "[photo: %s]\n", describeImage(p.Image))
	}
	heart := "♡"
	if p.IsLiked {
		heart = "♥"
	}
	fmt.Fprintf(a.out, "%s %d   💬 %d\n\n", heart, p.Likes, len(p.Comments))
}

// describeImage renders "image/png, 12.3 KB" for a base64 data URI.
func describeImage(uri string) string {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return "attached"
	}
	mime, _, _ := strings.Cut(meta, ";")
	size := float64(len(payload)) * 3 / 4
	return fmt.Sprintf("%s, %.1f KB", mime, size/1024)
}
