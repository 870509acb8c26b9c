package service

import (
	"context"
	"encoding/json"

	"ai-stemtutor-be/internal/dto"
	"ai-stemtutor-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const moduleWorker = "AI_WORKER"

// IWorkerService owns the background goroutines that drain the submit topic
// and hand each interaction id to the orchestrator.
type IWorkerService interface {
	Start(ctx context.Context) error
}

type workerService struct {
	pubSub      *gochannel.GoChannel
	submitTopic string
	workerCount int
	aiService   IAIService
	sysLogger   logger.ILogger
}

func NewWorkerService(
	pubSub *gochannel.GoChannel,
	submitTopic string,
	workerCount int,
	aiService IAIService,
	sysLogger logger.ILogger,
) IWorkerService {
	if workerCount <= 0 {
		workerCount = 1
	}
	return &workerService{
		pubSub:      pubSub,
		submitTopic: submitTopic,
		workerCount: workerCount,
		aiService:   aiService,
		sysLogger:   sysLogger,
	}
}

// Start subscribes once and fans the message channel out to workerCount
// goroutines. The goroutines exit when the pub/sub is closed.
func (w *workerService) Start(ctx context.Context) error {
	messages, err := w.pubSub.Subscribe(ctx, w.submitTopic)
	if err != nil {
		return err
	}

	for i := 0; i < w.workerCount; i++ {
		go w.runWorker(ctx, i, messages)
	}

	w.sysLogger.Info(moduleWorker, "Interaction workers started", map[string]interface{}{
		"topic":   w.submitTopic,
		"workers": w.workerCount,
	})
	return nil
}

func (w *workerService) runWorker(ctx context.Context, workerId int, messages <-chan *message.Message) {
	for msg := range messages {
		w.handleMessage(ctx, workerId, msg)
	}
}

// handleMessage always acks: a failed interaction is recorded as failed by
// the orchestrator, so redelivery would only reprocess a terminal record.
func (w *workerService) handleMessage(ctx context.Context, workerId int, msg *message.Message) {
	defer msg.Ack()

	var payload dto.InteractionSubmittedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		w.sysLogger.Error(moduleWorker, "Discarding malformed queue message", map[string]interface{}{
			"worker":     workerId,
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	w.aiService.Run(ctx, payload.InteractionId)
}
