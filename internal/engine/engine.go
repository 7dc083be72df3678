// Package engine hosts contract documents: it renders their payment clause,
// reconciles them against the reference total, applies bulk adjustments and
// keeps them in a Store.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/iwvelando/payment-clauses/internal/clausula"
	"github.com/iwvelando/payment-clauses/internal/conciliacao"
	"github.com/iwvelando/payment-clauses/internal/condicao"
	"github.com/iwvelando/payment-clauses/internal/config"
	"github.com/iwvelando/payment-clauses/internal/cronograma"
	"github.com/iwvelando/payment-clauses/internal/optimizer"
	"github.com/iwvelando/payment-clauses/pkg/optimization"
	"go.uber.org/zap"
)

// Report is everything derived from a contract document.
type Report struct {
	Contrato    condicao.Contrato        `json:"contrato"`
	Clausula    string                   `json:"clausula"`
	Conciliacao conciliacao.Result       `json:"conciliacao"`
	Cronograma  []cronograma.Installment `json:"cronograma"`
	Avisos      []string                 `json:"avisos,omitempty"`
}

// Adjustment is the outcome of a bulk percentage adjustment of a contract.
type Adjustment struct {
	Contrato     condicao.Contrato  `json:"contrato"`
	SkippedCount int                `json:"ignoradas"`
	Conciliacao  conciliacao.Result `json:"conciliacao"`
}

// Closing is the outcome of running closing directives on a contract.
type Closing struct {
	Contrato    condicao.Contrato      `json:"contrato"`
	Resumos     []optimization.Summary `json:"resumos"`
	Conciliacao conciliacao.Result     `json:"conciliacao"`
}

// BalanceListener is told about the new balance of a stored contract whenever
// its rounded difference or balanced flag changes.
type BalanceListener func(id uuid.UUID, result conciliacao.Result)

// Engine orchestrates contract documents over a Store. It keeps one Notifier
// per persisted contract until the contract is deleted.
type Engine struct {
	logger *zap.Logger
	store  Store

	mu        sync.Mutex
	notifiers map[uuid.UUID]*conciliacao.Notifier
	listener  BalanceListener
}

// New returns an Engine over store. A nil logger discards logs and a nil
// store is replaced by an empty MemoryStore.
func New(logger *zap.Logger, store Store) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = NewMemoryStore()
	}
	return &Engine{
		logger:    logger,
		store:     store,
		notifiers: make(map[uuid.UUID]*conciliacao.Notifier),
	}
}

// OnBalanceChange registers the listener for balance changes of persisted
// contracts, replacing any previous one.
func (e *Engine) OnBalanceChange(listener BalanceListener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listener = listener
}

// Generate normalises and validates contrato and derives its clause text,
// balance, installment schedule and warnings. Nothing is stored.
func (e *Engine) Generate(contrato condicao.Contrato) (Report, error) {
	prepared, err := contrato.Prepare()
	if err != nil {
		return Report{}, err
	}

	text, err := clausula.GenerateClauseText(prepared.Condicoes)
	if err != nil {
		return Report{}, fmt.Errorf("generating clause text: %w", err)
	}

	schedule, err := cronograma.Expand(prepared.Condicoes, prepared.ValorReferencia)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Contrato:    prepared,
		Clausula:    text,
		Conciliacao: conciliacao.Reconcile(prepared.Condicoes, prepared.ValorReferencia),
		Cronograma:  schedule,
		Avisos:      config.DocumentWarnings(prepared),
	}

	e.logger.Debug("generated contract report",
		zap.String("op", "engine.Generate"),
		zap.String("contrato", prepared.ID),
		zap.Int("condicoes", len(prepared.Condicoes)),
		zap.Int("parcelas", len(schedule)),
		zap.Bool("equilibrado", report.Conciliacao.IsBalanced),
	)
	return report, nil
}

// ApplyAdjustment scales the chosen dimension of every unsettled condition of
// contrato by percent. Settled conditions are skipped and counted. Neither
// contrato nor the store is modified.
func (e *Engine) ApplyAdjustment(contrato condicao.Contrato, percent float64, dimension conciliacao.Dimension) (Adjustment, error) {
	result, err := conciliacao.ApplyPercentAdjustment(contrato.Condicoes, percent, dimension, condicao.IsQuitada)
	if err != nil {
		return Adjustment{}, err
	}

	adjusted := contrato
	adjusted.Condicoes = result.Updated

	e.logger.Debug("applied percentage adjustment",
		zap.String("op", "engine.ApplyAdjustment"),
		zap.String("contrato", contrato.ID),
		zap.Float64("percentual", percent),
		zap.String("dimensao", string(dimension)),
		zap.Int("ignoradas", result.SkippedCount),
	)

	return Adjustment{
		Contrato:     adjusted,
		SkippedCount: result.SkippedCount,
		Conciliacao:  conciliacao.Reconcile(adjusted.Condicoes, adjusted.ValorReferencia),
	}, nil
}

// CloseBalance normalises contrato and runs the closing directives on it in
// order, each searching one field of one condition so the conditions add up
// to the reference total. Neither contrato nor the store is modified.
func (e *Engine) CloseBalance(contrato condicao.Contrato, directives []optimizer.Directive) (Closing, error) {
	prepared, err := contrato.Prepare()
	if err != nil {
		return Closing{}, err
	}

	runner := optimizer.NewRunner(e.logger, prepared)
	summaries, err := runner.Run(directives)
	if err != nil {
		return Closing{}, fmt.Errorf("closing balance: %w", err)
	}

	closed := runner.Contrato()
	result := conciliacao.Reconcile(closed.Condicoes, closed.ValorReferencia)

	e.logger.Debug("closing directives applied",
		zap.String("op", "engine.CloseBalance"),
		zap.String("contrato", prepared.ID),
		zap.Int("diretivas", len(directives)),
		zap.Bool("equilibrado", result.IsBalanced),
	)

	return Closing{
		Contrato:    closed,
		Resumos:     summaries,
		Conciliacao: result,
	}, nil
}

// AssignIDs gives the contract and every condition without an id a new
// random one. Existing ids are kept.
func AssignIDs(contrato condicao.Contrato) condicao.Contrato {
	out := contrato.Clone()
	if out.ID == "" {
		out.ID = uuid.NewString()
	}
	for i := range out.Condicoes {
		if out.Condicoes[i].ID == "" {
			out.Condicoes[i].ID = uuid.NewString()
		}
	}
	return out
}

// Persist validates contrato, assigns missing ids and saves it. The stored
// copy is returned and its balance is reported to the listener when it
// changed since the previous Persist of the same contract.
func (e *Engine) Persist(ctx context.Context, contrato condicao.Contrato) (condicao.Contrato, error) {
	prepared, err := AssignIDs(contrato).Prepare()
	if err != nil {
		return condicao.Contrato{}, err
	}

	id, err := uuid.Parse(prepared.ID)
	if err != nil {
		return condicao.Contrato{}, fmt.Errorf("%w: field id must be a UUID, got %q", condicao.ErrInvalid, prepared.ID)
	}

	if err := e.store.Save(ctx, id, prepared); err != nil {
		e.logger.Error("failed to save contract",
			zap.String("op", "engine.Persist"),
			zap.String("contrato", prepared.ID),
			zap.Error(err),
		)
		return condicao.Contrato{}, fmt.Errorf("saving contract %s: %w", id, err)
	}

	e.logger.Info("contract saved",
		zap.String("op", "engine.Persist"),
		zap.String("contrato", prepared.ID),
		zap.Int("condicoes", len(prepared.Condicoes)),
	)

	e.notifier(id).Observe(conciliacao.Reconcile(prepared.Condicoes, prepared.ValorReferencia))
	return prepared, nil
}

// Load returns the stored contract, or ErrNotFound.
func (e *Engine) Load(ctx context.Context, id uuid.UUID) (condicao.Contrato, error) {
	return e.store.Load(ctx, id)
}

// Delete removes the stored contract and forgets its last reported balance,
// so persisting the same id again reports its balance afresh.
func (e *Engine) Delete(ctx context.Context, id uuid.UUID) error {
	if err := e.store.Delete(ctx, id); err != nil {
		return err
	}

	e.mu.Lock()
	delete(e.notifiers, id)
	e.mu.Unlock()

	e.logger.Info("contract deleted",
		zap.String("op", "engine.Delete"),
		zap.String("contrato", id.String()),
	)
	return nil
}

// Report loads the stored contract and generates its report.
func (e *Engine) Report(ctx context.Context, id uuid.UUID) (Report, error) {
	contrato, err := e.store.Load(ctx, id)
	if err != nil {
		return Report{}, err
	}
	return e.Generate(contrato)
}

// Adjust applies a percentage adjustment to the stored contract and then
// persists the result. The two steps run back to back; a failed adjustment
// leaves the stored contract untouched.
func (e *Engine) Adjust(ctx context.Context, id uuid.UUID, percent float64, dimension conciliacao.Dimension) (Adjustment, error) {
	contrato, err := e.store.Load(ctx, id)
	if err != nil {
		return Adjustment{}, err
	}

	adjustment, err := e.ApplyAdjustment(contrato, percent, dimension)
	if err != nil {
		return Adjustment{}, err
	}

	saved, err := e.Persist(ctx, adjustment.Contrato)
	if err != nil {
		return Adjustment{}, err
	}
	adjustment.Contrato = saved
	return adjustment, nil
}

func (e *Engine) notifier(id uuid.UUID) *conciliacao.Notifier {
	e.mu.Lock()
	defer e.mu.Unlock()

	n, ok := e.notifiers[id]
	if !ok {
		n = conciliacao.NewNotifier(func(r conciliacao.Result) {
			e.balanceChanged(id, r)
		})
		e.notifiers[id] = n
	}
	return n
}

func (e *Engine) balanceChanged(id uuid.UUID, r conciliacao.Result) {
	e.logger.Info("contract balance changed",
		zap.String("op", "engine.balanceChanged"),
		zap.String("contrato", id.String()),
		zap.Float64("diferenca", r.Difference),
		zap.Bool("equilibrado", r.IsBalanced),
	)

	e.mu.Lock()
	listener := e.listener
	e.mu.Unlock()

	if listener != nil {
		listener(id, r)
	}
}
