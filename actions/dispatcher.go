package actions

import (
	"context"
	"fmt"
	"time"

	"go-bankledger/events"
	"go-bankledger/models"
	"go-bankledger/store"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var actionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ledger_actions_total",
		Help: "Ledger actions dispatched, by action type and outcome",
	},
	[]string{"action", "outcome"},
)

// Result is what a dispatched action produced plus the ledger state after it.
type Result struct {
	Customer     *models.Customer        `json:"customer,omitempty"`
	Account      *models.Account         `json:"account,omitempty"`
	Transactions []models.Transaction    `json:"transactions,omitempty"`
	Transfer     *models.TransferReceipt `json:"transfer,omitempty"`
	State        models.Bank             `json:"state"`
}

// Dispatcher applies actions to the store, then logs and publishes what changed.
// Publishing happens after the store has released its lock.
type Dispatcher struct {
	store     *store.Store
	publisher events.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewDispatcher(s *store.Store, publisher events.Publisher, logger *zap.Logger) *Dispatcher {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Dispatcher{
		store:     s,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Store exposes the call-style contract behind the dispatcher
func (d *Dispatcher) Store() *store.Store {
	return d.store
}

// publishTimeout bounds event delivery once the request that caused it is gone
const publishTimeout = 10 * time.Second

// Dispatch applies one action. Refusals come back as the store's taxonomy
// errors and leave the ledger unchanged. The returned state is the snapshot
// taken under the same lock as the mutation.
func (d *Dispatcher) Dispatch(ctx context.Context, action Action) (Result, error) {
	if action == nil {
		return Result{}, fmt.Errorf("%w: nil", ErrUnknownAction)
	}

	var (
		res Result
		evs []events.Event
	)
	state, err := d.store.Update(func(l store.Ledger) error {
		var err error
		switch a := action.(type) {
		case CreateCustomer:
			res, evs = createCustomer(l, a)
		case CreateAccount:
			res, evs, err = createAccount(l, a)
		case Deposit:
			res, evs, err = posted(l, a.AccountNumber)(l.Deposit(a.AccountNumber, a.Amount, a.Description))
		case Withdraw:
			res, evs, err = posted(l, a.AccountNumber)(l.Withdraw(a.AccountNumber, a.Amount, a.Description))
		case Transfer:
			res, evs, err = transfer(l, a)
		case DeactivateAccount:
			res, evs, err = d.deactivate(l, a)
		default:
			err = fmt.Errorf("%w: %T", ErrUnknownAction, action)
		}
		return err
	})

	if err != nil {
		actionsTotal.WithLabelValues(string(action.Type()), outcome(err)).Inc()
		d.logger.Info("action refused",
			zap.String("action", string(action.Type())),
			zap.String("code", store.Code(err)),
			zap.Error(err),
		)
		return Result{}, err
	}

	res.State = state
	actionsTotal.WithLabelValues(string(action.Type()), "ok").Inc()
	d.logger.Info("action applied", zap.String("action", string(action.Type())), zap.Int("events", len(evs)))
	d.publish(ctx, evs)
	return res, nil
}

func createCustomer(l store.Ledger, a CreateCustomer) (Result, []events.Event) {
	c := l.CreateCustomer(store.NewCustomer{
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Email:       a.Email,
		Phone:       a.Phone,
		Address:     a.Address,
		DateOfBirth: a.DateOfBirth,
	})
	ev := events.New(events.CustomerCreated, c.CreatedAt)
	ev.CustomerID = c.ID
	return Result{Customer: &c}, []events.Event{ev}
}

func createAccount(l store.Ledger, a CreateAccount) (Result, []events.Event, error) {
	account, err := l.CreateAccount(a.CustomerID, a.AccountType, a.InitialBalance)
	if err != nil {
		return Result{}, nil, err
	}
	ev := events.New(events.AccountOpened, account.CreatedAt)
	ev.CustomerID = account.CustomerID
	ev.AccountNumber = account.Number
	balance := account.Balance
	ev.BalanceAfter = &balance
	return Result{Account: &account, Transactions: account.Transactions}, []events.Event{ev}, nil
}

// posted wraps a single-entry ledger call so its result feeds straight in.
func posted(l store.Ledger, number string) func(models.Transaction, error) (Result, []events.Event, error) {
	return func(tx models.Transaction, err error) (Result, []events.Event, error) {
		if err != nil {
			return Result{}, nil, err
		}
		account, _ := l.Account(number)
		return Result{Account: &account, Transactions: []models.Transaction{tx}},
			[]events.Event{transactionEvent(number, tx)}, nil
	}
}

func transfer(l store.Ledger, a Transfer) (Result, []events.Event, error) {
	receipt, err := l.Transfer(a.FromAccountNumber, a.ToAccountNumber, a.Amount, a.Description)
	if err != nil {
		return Result{}, nil, err
	}
	return Result{
			Transfer:     &receipt,
			Transactions: []models.Transaction{receipt.Debit, receipt.Credit},
		}, []events.Event{
			transactionEvent(a.FromAccountNumber, receipt.Debit),
			transactionEvent(a.ToAccountNumber, receipt.Credit),
		}, nil
}

func (d *Dispatcher) deactivate(l store.Ledger, a DeactivateAccount) (Result, []events.Event, error) {
	account, err := l.Deactivate(a.AccountNumber)
	if err != nil {
		return Result{}, nil, err
	}
	ev := events.New(events.AccountDeactivated, d.now())
	ev.CustomerID = account.CustomerID
	ev.AccountNumber = account.Number
	return Result{Account: &account}, []events.Event{ev}, nil
}

// publish sends one action's events together. The mutation is already
// committed, so delivery outlives a cancelled request.
func (d *Dispatcher) publish(ctx context.Context, evs []events.Event) {
	if len(evs) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := d.publisher.Publish(ctx, evs...); err != nil {
		ids := make([]string, 0, len(evs))
		for _, ev := range evs {
			ids = append(ids, ev.ID)
		}
		d.logger.Warn("publish ledger events failed",
			zap.Strings("event_ids", ids),
			zap.Error(err),
		)
	}
}

func transactionEvent(number string, tx models.Transaction) events.Event {
	ev := events.New(events.TransactionPosted, tx.Timestamp)
	ev.AccountNumber = number
	ev.TransactionID = tx.ID
	ev.TransactionType = string(tx.Type)
	amount := tx.Signed()
	ev.Amount = &amount
	ev.BalanceAfter = tx.BalanceAfter
	ev.Counterparty = tx.Counterparty
	ev.Description = tx.Description
	ev.Memo = tx.Memo
	return ev
}

func outcome(err error) string {
	if code := store.Code(err); code != "" {
		return code
	}
	return "error"
}
