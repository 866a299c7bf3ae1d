package messaging

import (
	"context"
	"encoding/json"
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/surgicare/surgicare/internal/domain/profile"
)

// Provisioner is the slice of the profile service the consumer needs.
type Provisioner interface {
	Provision(ctx context.Context, ev profile.IdentityCreated) (*profile.Profile, error)
}

// ConsumeIdentityEvents binds a durable queue to identity.created and
// provisions a profile for every new identity. The delivery is only acked
// once the profile row is committed, so a crash mid-provision redelivers
// the event rather than losing the signup.
//
// A provisioning failure (bad role in metadata, duplicate email) is
// permanent: the message is rejected without requeue and the failure is
// logged. Transient failures are requeued.
func (b *Bus) ConsumeIdentityEvents(ctx context.Context, svc Provisioner) error {
	queue, err := b.channel.QueueDeclare(provisionQueue, true, false, false, false, nil)
	if err != nil {
		return err
	}
	if err := b.channel.QueueBind(queue.Name, IdentityCreatedKey, ExchangeName, false, nil); err != nil {
		return err
	}
	deliveries, err := b.channel.Consume(queue.Name, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				b.handleIdentityCreated(ctx, svc, d)
			}
		}
	}()
	return nil
}

func (b *Bus) handleIdentityCreated(ctx context.Context, svc Provisioner, d amqp.Delivery) {
	var ev profile.IdentityCreated
	if err := json.Unmarshal(d.Body, &ev); err != nil {
		b.logger.Error().Err(err).Msg("malformed identity.created payload")
		d.Reject(false)
		return
	}

	created, err := svc.Provision(ctx, ev)
	if err != nil {
		var perr *profile.ProvisioningError
		if errors.As(err, &perr) {
			b.logger.Error().Err(err).Str("identity_id", ev.ID.String()).Msg("provisioning rejected")
			d.Reject(false)
			return
		}
		b.logger.Warn().Err(err).Str("identity_id", ev.ID.String()).Msg("provisioning failed, requeueing")
		d.Nack(false, true)
		return
	}

	if err := b.Publish(ctx, ProfileProvisionedKey, created); err != nil {
		b.logger.Warn().Err(err).Str("profile_id", created.ID.String()).Msg("profile.provisioned publish failed")
	}
	d.Ack(false)
}
