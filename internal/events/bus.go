// Package events carries in-process notifications between the enquiry
// submission flow and the admin realtime refresh stream.
package events

import (
	"github.com/asaskevich/EventBus"

	"github.com/Shreyam1010/roar-emporium-gradient/internal/domain"
)

// TopicEnquiryCreated fires after an enquiry row has been durably inserted.
const TopicEnquiryCreated = "enquiry:created"

// Bus is a typed facade over the process-wide event bus
type Bus struct {
	bus EventBus.Bus
}

// NewBus creates an empty event bus
func NewBus() *Bus {
	return &Bus{bus: EventBus.New()}
}

// PublishEnquiryCreated notifies subscribers of a newly persisted enquiry
func (b *Bus) PublishEnquiryCreated(enquiry *domain.Enquiry) {
	b.bus.Publish(TopicEnquiryCreated, enquiry)
}

// SubscribeEnquiryCreated registers fn for enquiry-created notifications.
// The same fn value must be passed to UnsubscribeEnquiryCreated on teardown.
func (b *Bus) SubscribeEnquiryCreated(fn func(*domain.Enquiry)) error {
	return b.bus.Subscribe(TopicEnquiryCreated, fn)
}

// UnsubscribeEnquiryCreated removes a previously registered subscriber
func (b *Bus) UnsubscribeEnquiryCreated(fn func(*domain.Enquiry)) error {
	return b.bus.Unsubscribe(TopicEnquiryCreated, fn)
}
