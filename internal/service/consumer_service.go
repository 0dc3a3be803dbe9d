package service

import (
	"context"
	"encoding/json"
	"log"

	"profile-match-be/internal/dto"
	"profile-match-be/internal/repository/memory"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService persists mapping snapshots whenever a profile change
// lands on the internal bus, so a crash loses at most the in-flight write.
type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	userStore    *memory.MappingStore
	networkStore *memory.MappingStore
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	userStore *memory.MappingStore,
	networkStore *memory.MappingStore,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		userStore:    userStore,
		networkStore: networkStore,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.ProfileChangedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal profile change message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	switch payload.Scope {
	case ScopeUsers:
		if err := cs.userStore.Save(); err != nil {
			log.Printf("[ERROR] Failed to save user snapshot: %v", err)
			msg.Nack()
			return
		}
	case ScopeNetworks:
		if err := cs.networkStore.Save(); err != nil {
			log.Printf("[ERROR] Failed to save network snapshot: %v", err)
			msg.Nack()
			return
		}
	default:
		log.Printf("[WARN] Unknown snapshot scope %q, ignoring", payload.Scope)
	}

	msg.Ack()
}
