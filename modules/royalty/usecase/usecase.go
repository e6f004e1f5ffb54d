package usecase

import (
	"strings"
	"time"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/gaze-network/royalty-registry/internal/subscription"
	"github.com/gaze-network/royalty-registry/modules/royalty/config"
	"github.com/gaze-network/royalty-registry/modules/royalty/datagateway"
	"github.com/gaze-network/royalty-registry/modules/royalty/internal/entity"
	"github.com/gaze-network/royalty-registry/modules/royalty/protocol"
)

type Usecase struct {
	dg     datagateway.RoyaltyDataGateway
	broker *subscription.Broker[entity.Notification]

	unknownAsset     string
	mutable          bool
	allowlist        bool
	allowedNotifiers map[protocol.Address]struct{}

	now func() time.Time
}

func New(dg datagateway.RoyaltyDataGateway, broker *subscription.Broker[entity.Notification], conf config.Config) (*Usecase, error) {
	u := &Usecase{
		dg:               dg,
		broker:           broker,
		mutable:          conf.Mutable,
		allowedNotifiers: make(map[protocol.Address]struct{}),
		now:              func() time.Time { return time.Now().UTC() },
	}

	switch policy := strings.ToLower(utils.Default(conf.UnknownAsset, config.UnknownAssetNotFound)); policy {
	case config.UnknownAssetNotFound, config.UnknownAssetZero:
		u.unknownAsset = policy
	default:
		return nil, errors.Wrapf(errs.Unsupported, "%q unknown asset policy is not supported", conf.UnknownAsset)
	}

	switch policy := strings.ToLower(utils.Default(conf.Notification.Policy, config.NotificationPolicyOpen)); policy {
	case config.NotificationPolicyOpen:
	case config.NotificationPolicyAllowlist:
		u.allowlist = true
		for i, notifier := range conf.Notification.AllowedNotifiers {
			addr, err := protocol.NewAddressFromString(notifier)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid allowed_notifiers[%d]", i)
			}
			u.allowedNotifiers[addr] = struct{}{}
		}
	default:
		return nil, errors.Wrapf(errs.Unsupported, "%q notification policy is not supported", conf.Notification.Policy)
	}

	return u, nil
}

// SupportsInterface reports whether the registry implements the given interface.
func (u *Usecase) SupportsInterface(id protocol.InterfaceID) bool {
	return protocol.SupportsInterface(id)
}

// Subscribe forwards every accepted notification to ch until the subscription is unsubscribed.
func (u *Usecase) Subscribe(ch chan<- entity.Notification) (*subscription.ClientSubscription[entity.Notification], error) {
	sub, err := u.broker.Subscribe(ch)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	subscribers.Inc()
	go func() {
		<-sub.Done()
		subscribers.Dec()
	}()
	return sub, nil
}
