package service

import (
	"time"

	"meetapp.app/api/internal/auth"
	"meetapp.app/api/internal/queue"
	"meetapp.app/api/internal/storage"
	"meetapp.app/api/internal/store"
)

type Services struct {
	stores   *store.Stores
	txRunner TxRunner
	queue    queue.Producer
	tokens   *auth.Tokens
	storage  storage.Storage
	loc      *time.Location
	now      func() time.Time
}

func NewServices(
	stores *store.Stores,
	txRunner TxRunner,
	queue queue.Producer,
	tokens *auth.Tokens,
	storage storage.Storage,
	loc *time.Location,
) *Services {
	return &Services{
		stores:   stores,
		txRunner: txRunner,
		queue:    queue,
		tokens:   tokens,
		storage:  storage,
		loc:      loc,
		now:      time.Now,
	}
}

func (s *Services) Users() UserService {
	return NewUserService(s.stores.Users())
}

func (s *Services) Sessions() SessionService {
	return NewSessionService(s.stores.Users(), s.tokens)
}

func (s *Services) Files() FileService {
	return NewFileService(s.stores.Files(), s.storage)
}

func (s *Services) Meetups() MeetupService {
	return NewMeetupService(s.stores.Meetups(), s.stores.Files(), s.loc, s.now)
}

func (s *Services) Subscriptions() SubscriptionService {
	return NewSubscriptionService(s.stores.Subscriptions(), s.txRunner, s.queue, s.now)
}
