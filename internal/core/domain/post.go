package domain

import (
	"errors"
	"time"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment does not exist")
	ErrAlreadyLiked    = errors.New("post already liked")
	ErrNotLiked        = errors.New("post has not yet been liked")
	ErrForbidden       = errors.New("user not authorized")
)

type Like struct {
	ID   string `json:"_id" bson:"_id"`
	User string `json:"user" bson:"user"`
}

type Comment struct {
	ID     string    `json:"_id" bson:"_id"`
	User   string    `json:"user" bson:"user"`
	Text   string    `json:"text" bson:"text"`
	Name   string    `json:"name" bson:"name"`
	Avatar string    `json:"avatar" bson:"avatar"`
	Date   time.Time `json:"date" bson:"date"`
}

// Post is a discussion entry. Name and Avatar are copied from the author at
// creation time. Likes and Comments are ordered newest first.
type Post struct {
	ID       string    `json:"_id"`
	User     string    `json:"user"`
	Text     string    `json:"text"`
	Name     string    `json:"name"`
	Avatar   string    `json:"avatar"`
	Likes    []Like    `json:"likes"`
	Comments []Comment `json:"comments"`
	Date     time.Time `json:"date"`
}
