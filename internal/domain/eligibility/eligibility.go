// Package eligibility decides whether a save qualifies for New Game Plus.
package eligibility

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/okian/ngplus/internal/domain/metadata"
	"github.com/okian/ngplus/internal/domain/save"
	"github.com/okian/ngplus/pkg/logger"
	"github.com/okian/ngplus/pkg/metrics"
)

// Gate tokens.
const (
	blueprintFact = "q307_blueprint_acquired=1"
)

// requiredQuests must all appear in finishedQuests for the quest gate.
var requiredQuests = [...]string{"q104", "q110", "q112"}

// Option applies a configuration option to the Evaluator.
type Option func(*Evaluator)

// WithBaseDir sets the save directory holding one folder per save.
func WithBaseDir(dir string) Option {
	return func(e *Evaluator) {
		e.baseDir = dir
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Evaluator) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMetrics records every evaluation on m.
func WithMetrics(m *metrics.Manager) Option {
	return func(e *Evaluator) {
		e.metrics = m
	}
}

// Evaluator applies the New Game Plus gates to saves. It holds no state
// between evaluations.
type Evaluator struct {
	baseDir string
	logger  logger.Logger
	metrics *metrics.Manager
}

// New creates an Evaluator. Without a logger diagnostics are discarded.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// IsEligible is Evaluate without the playthrough token.
func (e *Evaluator) IsEligible(ctx context.Context, id string) bool {
	return e.Evaluate(ctx, id).Eligible
}

// Evaluate loads the metadata of save id from the base directory and runs
// every gate on it. End-game saves are rejected before any file access.
func (e *Evaluator) Evaluate(ctx context.Context, id string) Result {
	start := time.Now()
	res := e.evaluate(ctx, id)
	e.metrics.RecordEvaluation(res.Eligible, string(res.Reason), time.Since(start))
	return res
}

// EvaluateDocument runs the gates on an already loaded document.
func (e *Evaluator) EvaluateDocument(ctx context.Context, id string, doc *metadata.Document) Result {
	start := time.Now()
	entry := save.NewEntry(id)
	var res Result
	if entry.IsEndGameSave() {
		res = e.rejectEndGame(ctx, entry)
	} else {
		res = e.check(ctx, entry, doc)
	}
	e.metrics.RecordEvaluation(res.Eligible, string(res.Reason), time.Since(start))
	return res
}

func (e *Evaluator) evaluate(ctx context.Context, id string) Result {
	entry := save.NewEntry(id)
	if entry.IsEndGameSave() {
		return e.rejectEndGame(ctx, entry)
	}

	path := entry.MetadataPath(e.baseDir)
	e.trace(ctx, entry, "processing save", logger.String("path", path))

	doc, err := metadata.Load(path)
	if err != nil {
		var le *metadata.LoadError
		kind := metadata.ParseFailure
		if errors.As(err, &le) {
			kind = le.Kind
		}
		switch kind {
		case metadata.NotARegularFile:
			e.trace(ctx, entry, "metadata is not a regular file")
		case metadata.ReadFailure:
			e.trace(ctx, entry, "failed to read metadata", logger.Error(err))
		default:
			e.trace(ctx, entry, "failed to parse metadata", logger.Error(err))
		}
		return reject(reasonForLoad(kind))
	}

	return e.check(ctx, entry, doc)
}

func (e *Evaluator) rejectEndGame(ctx context.Context, entry save.Entry) Result {
	e.trace(ctx, entry, "skipping end-game save")
	return reject(ReasonEndGameSave)
}

// check runs the structural checks and the gates, stopping at the first
// check that fails or the first gate that qualifies.
func (e *Evaluator) check(ctx context.Context, entry save.Entry, doc *metadata.Document) Result {
	if doc == nil || !doc.IsObject() {
		e.trace(ctx, entry, "metadata is not an object")
		return reject(ReasonNotObject)
	}

	if f := doc.String("RootType"); !f.OK() {
		e.trace(ctx, entry, "missing RootType", logger.String("status", f.Status.String()))
		return reject(ReasonMissingRootType)
	}

	data := doc.Object("Data")
	if !data.OK() {
		e.trace(ctx, entry, "inner metadata not found", logger.String("status", data.Status.String()))
		return reject(ReasonMissingMetadata)
	}
	inner := data.Value.Object("metadata")
	if !inner.OK() {
		e.trace(ctx, entry, "inner metadata not found", logger.String("status", inner.Status.String()))
		return reject(ReasonMissingMetadata)
	}
	md := inner.Value

	version := md.Int64("gameVersion")
	if !version.OK() {
		e.trace(ctx, entry, "bad game version", logger.String("status", version.Status.String()))
		return reject(ReasonBadGameVersion)
	}
	if version.Value < save.MinSupportedGameVersion {
		e.trace(ctx, entry, "save is too old",
			logger.Int64("min_game_version", save.MinSupportedGameVersion),
			logger.Int64("game_version", version.Value),
		)
		return reject(ReasonVersionTooOld)
	}

	if entry.IsPointOfNoReturn() {
		e.trace(ctx, entry, "save is a point-of-no-return save, checking quests and facts")
	}

	playthrough := md.String("playthroughID")
	if !playthrough.OK() {
		e.trace(ctx, entry, "playthroughID not found", logger.String("status", playthrough.Status.String()))
		return reject(ReasonMissingPlaythroughID)
	}
	playthroughID := playthrough.Value

	quests := md.String("finishedQuests")
	if !quests.OK() {
		e.trace(ctx, entry, "finishedQuests not found", logger.String("status", quests.Status.String()))
		return Result{Reason: ReasonMissingFinishedQuests, PlaythroughID: playthroughID}
	}
	if hasRequiredQuests(quests.Value) {
		e.trace(ctx, entry, "necessary quests done, NG+ can be started", logger.String("playthrough_id", playthroughID))
		return accept(ReasonQuestsComplete, playthroughID)
	}

	facts := md.Array("facts")
	if !facts.OK() {
		e.trace(ctx, entry, "important facts not found", logger.String("status", facts.Status.String()))
		return Result{Reason: ReasonMissingFacts, PlaythroughID: playthroughID}
	}
	for _, fact := range facts.Value {
		v, ok := fact.StringValue()
		if !ok {
			continue
		}
		if v == blueprintFact {
			e.trace(ctx, entry, "save has the q307 blueprint fact", logger.String("playthrough_id", playthroughID))
			return accept(ReasonBlueprintAcquired, playthroughID)
		}
	}

	e.trace(ctx, entry, "save does not meet criteria")
	return Result{Reason: ReasonCriteriaNotMet, PlaythroughID: playthroughID}
}

// hasRequiredQuests splits finished on single spaces into a set and checks
// that every required quest is in it. Order and duplicates do not matter.
func hasRequiredQuests(finished string) bool {
	done := make(map[string]struct{})
	for _, q := range strings.Split(finished, " ") {
		done[q] = struct{}{}
	}
	for _, q := range requiredQuests {
		if _, ok := done[q]; !ok {
			return false
		}
	}
	return true
}

func (e *Evaluator) trace(ctx context.Context, entry save.Entry, msg string, fields ...logger.Field) {
	fields = append([]logger.Field{logger.String("save", entry.Identifier)}, fields...)
	e.logger.Info(ctx, msg, fields...)
}
