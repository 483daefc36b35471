package memory

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"maps"
	"slices"
	"sync"
	"tower_backend/internal/model"
	"tower_backend/internal/repository"
)

type txKey struct{}

// Store - хранилище в памяти процесса для локального запуска и тестов.
// Do выполняет транзакции по одной, при ошибке данные откатываются к снимку
type Store struct {
	txMtx sync.Mutex
	mtx   sync.RWMutex
	data  data
}

type data struct {
	users        map[int]model.User
	logins       map[string]int
	sessions     map[string]model.Session
	rounds       map[int]model.Round
	transactions []model.Transaction
	history      []model.GameHistory
	nextUserID   int
	nextTxID     int64
	nextGameID   int64
}

var (
	_ repository.TxManager        = (*Store)(nil)
	_ repository.UserRepository   = (*Store)(nil)
	_ repository.AuthRepository   = (*Store)(nil)
	_ repository.LedgerRepository = (*Store)(nil)
	_ repository.RoundRepository  = (*Store)(nil)
)

func NewStore() *Store {
	return &Store{
		data: data{
			users:    make(map[int]model.User),
			logins:   make(map[string]int),
			sessions: make(map[string]model.Session),
			rounds:   make(map[int]model.Round),
		},
	}
}

// Do - выполняет fn атомарно. Вложенный вызов работает в рамках внешней транзакции
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if inTx(ctx) {
		return fn(ctx)
	}

	s.txMtx.Lock()
	defer s.txMtx.Unlock()

	snapshot := s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.restore(snapshot)
			panic(p)
		}
		if err != nil {
			s.restore(snapshot)
		}
	}()

	if err = ctx.Err(); err != nil {
		return err
	}

	return fn(context.WithValue(ctx, txKey{}, true))
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

// write - изменение данных. Вне транзакции ждет завершения текущей, чтобы откат ее не затер
func (s *Store) write(ctx context.Context, fn func(d *data) error) error {
	if !inTx(ctx) {
		s.txMtx.Lock()
		defer s.txMtx.Unlock()
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	return fn(&s.data)
}

func (s *Store) read(fn func(d *data)) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	fn(&s.data)
}

func (s *Store) snapshot() data {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	d := s.data
	d.users = maps.Clone(d.users)
	d.logins = maps.Clone(d.logins)
	d.sessions = maps.Clone(d.sessions)
	d.rounds = maps.Clone(d.rounds)
	d.transactions = slices.Clone(d.transactions)
	d.history = slices.Clone(d.history)
	return d
}

func (s *Store) restore(d data) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.data = d
}

//region users

func (s *Store) CreateUser(ctx context.Context, user *model.User) (int, error) {
	var id int
	err := s.write(ctx, func(d *data) error {
		if _, ok := d.logins[user.Login]; ok {
			return &model.UserExistsError{Msg: fmt.Sprintf("user %s already exists", user.Login)}
		}
		d.nextUserID++
		id = d.nextUserID

		u := *user
		u.ID = id
		d.users[id] = u
		d.logins[u.Login] = id
		return nil
	})
	return id, err
}

func (s *Store) GetUserByLogin(_ context.Context, login string) (*model.User, error) {
	var (
		user model.User
		ok   bool
	)
	s.read(func(d *data) {
		var id int
		if id, ok = d.logins[login]; ok {
			user = d.users[id]
		}
	})
	if !ok {
		return nil, &model.UserNotFoundError{Msg: fmt.Sprintf("user %s not found", login)}
	}
	return &user, nil
}

func (s *Store) GetUserByID(_ context.Context, id int) (*model.User, error) {
	var (
		user model.User
		ok   bool
	)
	s.read(func(d *data) {
		user, ok = d.users[id]
	})
	if !ok {
		return nil, &model.UserNotFoundError{Msg: fmt.Sprintf("user %d not found", id)}
	}
	return &user, nil
}

func (s *Store) GetBalance(ctx context.Context, id int) (decimal.Decimal, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	return user.Balance, nil
}

// LockBalance - транзакции и так идут по одной, отдельная блокировка строки не нужна
func (s *Store) LockBalance(ctx context.Context, id int) (decimal.Decimal, error) {
	return s.GetBalance(ctx, id)
}

func (s *Store) UpdateBalance(ctx context.Context, id int, balance decimal.Decimal) error {
	return s.write(ctx, func(d *data) error {
		user, ok := d.users[id]
		if !ok {
			return &model.UserNotFoundError{Msg: fmt.Sprintf("user %d not found", id)}
		}
		user.Balance = balance
		d.users[id] = user
		return nil
	})
}

//endregion

//region sessions

func (s *Store) CreateSession(ctx context.Context, session *model.Session) error {
	return s.write(ctx, func(d *data) error {
		d.sessions[session.ID] = *session
		return nil
	})
}

func (s *Store) GetSession(_ context.Context, sessionID string) (*model.Session, error) {
	var (
		session model.Session
		ok      bool
	)
	s.read(func(d *data) {
		session, ok = d.sessions[sessionID]
	})
	if !ok {
		return nil, &model.UnauthorizedError{Msg: "session not found"}
	}
	return &session, nil
}

func (s *Store) DeleteSession(ctx context.Context, sessionID string) error {
	return s.write(ctx, func(d *data) error {
		delete(d.sessions, sessionID)
		return nil
	})
}

//endregion

//region ledger

func (s *Store) InsertTransaction(ctx context.Context, tx *model.Transaction) (int64, error) {
	var id int64
	err := s.write(ctx, func(d *data) error {
		d.nextTxID++
		id = d.nextTxID

		t := *tx
		t.ID = id
		d.transactions = append(d.transactions, t)
		return nil
	})
	return id, err
}

func (s *Store) InsertGameHistory(ctx context.Context, h *model.GameHistory) (int64, error) {
	var id int64
	err := s.write(ctx, func(d *data) error {
		d.nextGameID++
		id = d.nextGameID

		rec := *h
		rec.ID = id
		d.history = append(d.history, rec)
		return nil
	})
	return id, err
}

func (s *Store) ListTransactions(_ context.Context, userID, limit int) ([]model.Transaction, error) {
	res := make([]model.Transaction, 0)
	s.read(func(d *data) {
		for _, t := range d.transactions {
			if t.UserID == userID {
				res = append(res, t)
			}
		}
	})

	slices.SortStableFunc(res, func(a, b model.Transaction) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return compareID(b.ID, a.ID)
	})
	return head(res, limit), nil
}

func (s *Store) ListGameHistory(_ context.Context, userID, limit int) ([]model.GameHistory, error) {
	res := make([]model.GameHistory, 0)
	s.read(func(d *data) {
		for _, h := range d.history {
			if h.UserID == userID {
				res = append(res, h)
			}
		}
	})

	slices.SortStableFunc(res, func(a, b model.GameHistory) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return compareID(b.ID, a.ID)
	})
	return head(res, limit), nil
}

func compareID(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func head[T any](list []T, limit int) []T {
	if limit > 0 && len(list) > limit {
		return list[:limit]
	}
	return list
}

//endregion

//region rounds

func (s *Store) GetRound(_ context.Context, userID int) (*model.Round, error) {
	var (
		round model.Round
		ok    bool
	)
	s.read(func(d *data) {
		round, ok = d.rounds[userID]
	})
	if !ok {
		return nil, nil
	}
	round.Multipliers = slices.Clone(round.Multipliers)
	return &round, nil
}

func (s *Store) SaveRound(ctx context.Context, round *model.Round) error {
	return s.write(ctx, func(d *data) error {
		r := *round
		r.Multipliers = slices.Clone(round.Multipliers)
		if r.Multipliers == nil {
			r.Multipliers = []decimal.Decimal{}
		}
		d.rounds[r.UserID] = r
		return nil
	})
}

func (s *Store) DeleteRound(ctx context.Context, userID int, roundID uuid.UUID) error {
	return s.write(ctx, func(d *data) error {
		r, ok := d.rounds[userID]
		if !ok || r.ID != roundID {
			return &model.InvalidStateError{Msg: "round already finished"}
		}
		delete(d.rounds, userID)
		return nil
	})
}

//endregion
