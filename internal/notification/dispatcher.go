package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"storefront/internal/config"
	"storefront/internal/models"
)

const sendTimeout = 10 * time.Second

// Sender delivers mail messages. *mail.Client satisfies it.
type Sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// Dispatcher sends order status emails. It is fire-and-forget: every
// failure is logged and reported only as OutcomeFailed, nothing is retried,
// and a missing transport turns sending into a logged no-op.
type Dispatcher struct {
	sender Sender
	from   string
	logger *zap.Logger
}

// NewDispatcher builds a dispatcher from the mail settings. When the
// settings are incomplete the dispatcher only logs what it would have sent.
func NewDispatcher(cfg config.MailConfig, logger *zap.Logger) (*Dispatcher, error) {
	if !cfg.Configured() {
		logger.Warn("mail transport not configured, order emails will be logged only")
		return &Dispatcher{logger: logger}, nil
	}

	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}
	return NewDispatcherWithSender(client, cfg.From, logger), nil
}

// NewDispatcherWithSender builds a dispatcher on an existing sender.
func NewDispatcherWithSender(sender Sender, from string, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		sender: sender,
		from:   from,
		logger: logger,
	}
}

// Notify sends the email for n. It never panics or returns an error.
func (d *Dispatcher) Notify(ctx context.Context, n models.OrderNotification) Outcome {
	log := d.logger.With(
		zap.String("order_id", n.OrderID),
		zap.String("status", string(n.Status)),
	)

	if d.sender == nil {
		log.Info("order email not sent, no mail transport",
			zap.String("to", n.Customer.Email),
			zap.String("product", n.Product.Name),
			zap.Int("quantity", n.Product.Quantity),
			zap.Float64("total", n.Totals.Total),
		)
		return OutcomeSkipped
	}

	msg, err := d.message(n)
	if err != nil {
		log.Error("order email not built", zap.Error(err))
		return OutcomeFailed
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := d.sender.DialAndSendWithContext(ctx, msg); err != nil {
		log.Error("order email send failed", zap.Error(err))
		return OutcomeFailed
	}

	log.Info("order email sent", zap.String("to", n.Customer.Email))
	return OutcomeSent
}

func (d *Dispatcher) message(n models.OrderNotification) (*mail.Msg, error) {
	subject, body, err := Render(n)
	if err != nil {
		return nil, err
	}

	msg := mail.NewMsg()
	if err := msg.From(d.from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", d.from, err)
	}
	if err := msg.To(n.Customer.Email); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", n.Customer.Email, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body)
	return msg, nil
}
