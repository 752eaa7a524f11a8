package notifier

import (
	"sync"
	"sync/atomic"

	"player-auction/utils"
)

// ChangeKind labels what moved; subscribers re-fetch the full snapshot
// either way, so the kind is informational only.
type ChangeKind string

const (
	ChangeBid   ChangeKind = "bid"
	ChangeLot   ChangeKind = "lot"
	ChangePurse ChangeKind = "purse"
)

// Token is the payload-free change signal delivered to subscribers. A token
// only guarantees that some state at least as new as the triggering commit
// is now fetchable.
type Token struct {
	Seq  uint64     `json:"seq"`
	Kind ChangeKind `json:"kind"`
}

// Subscription is one observer's handle on a channel. C never blocks the
// publisher; pending tokens are coalesced.
type Subscription struct {
	ID      string
	Channel string
	C       <-chan Token

	out chan Token
}

// Notifier fans committed state changes out to subscribers grouped by
// channel name. Delivery is at-least-once and coalesced: each subscriber
// holds a one-slot buffer, and a publish that finds it full is dropped
// because the buffered token already promises a fresher snapshot.
// Subscriber join/leave never blocks a publish.
type Notifier struct {
	mu   sync.RWMutex
	seq  atomic.Uint64
	subs map[string]map[string]*Subscription // channel -> subscription ID -> sub
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{
		subs: make(map[string]map[string]*Subscription),
	}
}

// Subscribe registers an observer on a channel and returns its handle.
func (n *Notifier) Subscribe(channel string) *Subscription {
	sub := &Subscription{
		ID:      utils.GenerateID(),
		Channel: channel,
		out:     make(chan Token, 1),
	}
	sub.C = sub.out

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.subs[channel] == nil {
		n.subs[channel] = make(map[string]*Subscription)
	}
	n.subs[channel][sub.ID] = sub
	return sub
}

// Unsubscribe removes the handle and closes its token stream. Safe to call
// with an already removed subscription.
func (n *Notifier) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	channel, ok := n.subs[sub.Channel]
	if !ok {
		return
	}
	if _, ok := channel[sub.ID]; !ok {
		return
	}
	delete(channel, sub.ID)
	close(sub.out)
	if len(channel) == 0 {
		delete(n.subs, sub.Channel)
	}
}

// Publish sends a change token to every subscriber of the channel without
// ever blocking the caller.
func (n *Notifier) Publish(channel string, kind ChangeKind) {
	token := Token{Seq: n.seq.Add(1), Kind: kind}

	n.mu.RLock()
	defer n.mu.RUnlock()

	for _, sub := range n.subs[channel] {
		select {
		case sub.out <- token:
		default:
			// Buffer full: a token is already pending, the subscriber will
			// re-fetch state newer than this commit anyway.
		}
	}
}

// Subscribers reports the active subscriber count on a channel.
func (n *Notifier) Subscribers(channel string) int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subs[channel])
}
