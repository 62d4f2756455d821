package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"studybuddy-backend/internal/models"
)

// StudentChannel is the pub/sub channel carrying realtime updates for one student.
func StudentChannel(studentID uuid.UUID) string {
	return "student_updates:" + studentID.String()
}

type EventPublisher interface {
	Publish(ctx context.Context, event models.Event) error
}

type RedisEventPublisher struct {
	client *redis.Client
}

func NewRedisEventPublisher(client *redis.Client) *RedisEventPublisher {
	return &RedisEventPublisher{client: client}
}

func (p *RedisEventPublisher) Publish(ctx context.Context, event models.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, StudentChannel(event.StudentID), payload).Err()
}

// publish sends a best-effort update; a failed publish never fails the write that caused it.
func publish(ctx context.Context, events EventPublisher, eventType string, studentID, courseID uuid.UUID, data interface{}) {
	if events == nil || studentID == uuid.Nil {
		return
	}
	event := models.Event{
		Type:      eventType,
		StudentID: studentID,
		CourseID:  &courseID,
		Data:      data,
		CreatedAt: time.Now().UTC(),
	}
	if err := events.Publish(ctx, event); err != nil {
		log.Printf("events: failed to publish %s for student %s: %v", eventType, studentID, err)
	}
}
