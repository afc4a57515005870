package queue

import (
	"github.com/maheshrc27/contentplanner/internal/repository"
)

type Queue struct {
	pr repository.PostRepository
}

func NewQueue(pr repository.PostRepository) *Queue {
	return &Queue{
		pr: pr,
	}
}

const TaskTypePublishPost = "post:publish"

type PublishPostPayload struct {
	PostID string `json:"post_id"`
}
