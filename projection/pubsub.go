package projection

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"cloud.google.com/go/pubsub"
	"github.com/bsm/redislock"
	"github.com/gin-gonic/gin"
	"github.com/merchantdata/estate_reporting_backend/config"
	"github.com/merchantdata/estate_reporting_backend/models"
	"github.com/merchantdata/estate_reporting_backend/utils"
	"github.com/sirupsen/logrus"
)

// PubSubPushEnvelope is the JSON body Google Pub/Sub sends to push endpoints.
type PubSubPushEnvelope struct {
	Message struct {
		Data       []byte            `json:"data"`
		MessageID  string            `json:"messageId"`
		Attributes map[string]string `json:"attributes"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// PubSubPushHandler accepts estate event deliveries and persists them to the
// projection inbox. Returning 204 acks the delivery; the inbox processor does
// the actual projection work. Duplicate deliveries collapse on the inbox
// unique key and are acked without a second insert.
func PubSubPushHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !envBoolDefault("ENABLE_ESTATE_EVENTS_PUSH_ENDPOINT", true) {
			c.Status(204)
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(204)
			return
		}

		var envelope PubSubPushEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			c.Status(204)
			return
		}

		attrs := envelope.Message.Attributes
		rec := models.ProjectionInboxRecord{
			EstateId:      strings.TrimSpace(attrs["estateId"]),
			EventId:       strings.TrimSpace(attrs["eventId"]),
			EventType:     strings.TrimSpace(attrs["eventType"]),
			Payload:       envelope.Message.Data,
			CorrelationId: strings.TrimSpace(attrs["correlationId"]),
		}
		if pos, err := strconv.ParseInt(attrs["streamPosition"], 10, 64); err == nil {
			rec.StreamPosition = pos
		}
		if rec.EstateId == "" || rec.EventId == "" || rec.EventType == "" {
			// Not an estate event envelope; ack so it is not redelivered.
			c.Status(204)
			return
		}

		err = config.GetDB().WithContext(c.Request.Context()).Create(&rec).Error
		if err != nil {
			if isDuplicateKeyErr(err) {
				c.Status(204)
				return
			}
			config.LogError(config.GetLogger(), "projection", "PubSubPushHandler", "insert inbox record", nil, err)
			// Nack via non-2xx so Pub/Sub redelivers once storage recovers.
			c.Status(503)
			return
		}
		c.Status(204)
	}
}

// RunPullWorker consumes the estate events subscription directly, bypassing
// the inbox. Used where a pull subscription is preferred over a push endpoint.
func RunPullWorker(ctx context.Context, dispatcher *Dispatcher, locker *redislock.Client, logger *logrus.Logger) error {
	subName := strings.TrimSpace(os.Getenv("ESTATE_EVENTS_SUBSCRIPTION"))
	if subName == "" {
		subName = "estate-events-reporting"
	}

	client, err := config.GetClient(ctx)
	if err != nil {
		return err
	}

	sub := client.Subscription(subName)
	if envBoolDefault("ESTATE_EVENTS_CREATE_SUBSCRIPTION", false) {
		topicName := strings.TrimSpace(os.Getenv("ESTATE_EVENTS_TOPIC"))
		if topicName == "" {
			topicName = "estate-events"
		}
		topic, err := config.CreateTopicIfNotExists(client, topicName)
		if err != nil {
			return err
		}
		sub, err = config.CreateSubscriptionIfNotExists(client, subName, topic)
		if err != nil {
			return err
		}
	}

	return sub.Receive(ctx, func(msgCtx context.Context, msg *pubsub.Message) {
		typeTag := strings.TrimSpace(msg.Attributes["eventType"])
		estateId := strings.TrimSpace(msg.Attributes["estateId"])

		procCtx := utils.SetCorrelationIdInContext(msgCtx, msg.Attributes["correlationId"])
		if pos, err := strconv.ParseInt(msg.Attributes["streamPosition"], 10, 64); err == nil {
			procCtx = utils.SetStreamPositionInContext(procCtx, pos)
		}

		err := WithEstateStreamLock(procCtx, locker, estateId, func(lockedCtx context.Context) error {
			_, applyErr := dispatcher.ApplyEvent(lockedCtx, typeTag, msg.Data)
			return applyErr
		})
		if err != nil {
			var decodeErr *DecodeError
			if errors.As(err, &decodeErr) {
				if logger != nil {
					logger.WithFields(logrus.Fields{
						"field":      "RunPullWorker",
						"estate_id":  estateId,
						"event_type": typeTag,
						"message_id": msg.ID,
					}).Error("undecodable event; acking: " + err.Error())
				}
				msg.Ack()
				return
			}
			if logger != nil {
				logger.WithFields(logrus.Fields{
					"field":      "RunPullWorker",
					"estate_id":  estateId,
					"event_type": typeTag,
					"message_id": msg.ID,
				}).Error("projection failed; nacking: " + err.Error())
			}
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

func envBoolDefault(key string, def bool) bool {
	val := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch val {
	case "true", "1", "yes", "y", "on":
		return true
	case "false", "0", "no", "n", "off":
		return false
	default:
		return def
	}
}
