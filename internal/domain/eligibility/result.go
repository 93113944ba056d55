package eligibility

import "github.com/okian/ngplus/internal/domain/metadata"

// Reason names the check that decided an evaluation.
type Reason string

// Rejection reasons, in evaluation order.
const (
	ReasonEndGameSave           Reason = "end_game_save"
	ReasonNotRegularFile        Reason = "not_a_regular_file"
	ReasonReadFailure           Reason = "read_failure"
	ReasonParseFailure          Reason = "parse_failure"
	ReasonNotObject             Reason = "not_an_object"
	ReasonMissingRootType       Reason = "missing_root_type"
	ReasonMissingMetadata       Reason = "missing_metadata"
	ReasonBadGameVersion        Reason = "bad_game_version"
	ReasonVersionTooOld         Reason = "version_too_old"
	ReasonMissingPlaythroughID  Reason = "missing_playthrough_id"
	ReasonMissingFinishedQuests Reason = "missing_finished_quests"
	ReasonMissingFacts          Reason = "missing_facts"
	ReasonCriteriaNotMet        Reason = "criteria_not_met"
)

// Acceptance reasons.
const (
	ReasonQuestsComplete    Reason = "quests_complete"
	ReasonBlueprintAcquired Reason = "blueprint_acquired"
)

// Result is the outcome of evaluating one save.
type Result struct {
	Eligible bool
	// PlaythroughID is the save's playthrough token. It is set whenever the
	// evaluation got far enough to read it, eligible or not.
	PlaythroughID string
	Reason        Reason
}

func reject(reason Reason) Result {
	return Result{Reason: reason}
}

func accept(reason Reason, playthroughID string) Result {
	return Result{Eligible: true, Reason: reason, PlaythroughID: playthroughID}
}

func reasonForLoad(kind metadata.Kind) Reason {
	switch kind {
	case metadata.NotARegularFile:
		return ReasonNotRegularFile
	case metadata.ReadFailure:
		return ReasonReadFailure
	default:
		return ReasonParseFailure
	}
}
