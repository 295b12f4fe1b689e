package reconcile

// Direction selects which side of a pass is the source of truth.
type Direction string

const (
	// Push makes the bucket prefix mirror the local tree.
	Push Direction = "push"
	// Pull makes the local tree mirror the bucket prefix.
	Pull Direction = "pull"
)

// DefaultWorkers is used when Options.Workers is not positive.
const DefaultWorkers = 4

// ActionType represents the type of a planned action.
type ActionType string

const (
	// ActionUpload copies a local file to the bucket.
	ActionUpload ActionType = "upload"
	// ActionDownload copies an object to the local tree.
	ActionDownload ActionType = "download"
	// ActionSkip leaves an identical key alone.
	ActionSkip ActionType = "skip"
	// ActionDelete removes a key from the destination side.
	ActionDelete ActionType = "delete"
	// ActionFail records a key that could not be planned.
	ActionFail ActionType = "fail"
)

// Action represents one planned operation on a single key.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the relative key.
	Key string `json:"key"`

	// LocalPath is the file on the local side.
	LocalPath string `json:"local_path,omitempty"`

	// Size is the number of bytes the action would transfer.
	Size int64 `json:"size"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`

	// DryRun suppresses the mutating call while keeping the reported kind.
	DryRun bool `json:"dry_run,omitempty"`

	// Err is set for ActionFail.
	Err error `json:"-"`
}

// Mutates reports whether the action changes either side when applied.
func (a Action) Mutates() bool {
	switch a.Type {
	case ActionUpload, ActionDownload, ActionDelete:
		return true
	}
	return false
}

// Plan contains the actions of one pass in execution order.
type Plan struct {
	// Direction is the direction the plan was built for.
	Direction Direction `json:"direction"`

	// Actions contains planned operations.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	// Uploads counts planned uploads.
	Uploads int `json:"uploads"`

	// Downloads counts planned downloads.
	Downloads int `json:"downloads"`

	// Skips counts unchanged keys.
	Skips int `json:"skips"`

	// Deletes counts planned deletions.
	Deletes int `json:"deletes"`

	// Failures counts keys that could not be fingerprinted.
	Failures int `json:"failures"`

	// BytesToTransfer sums the sizes of uploads and downloads.
	BytesToTransfer int64 `json:"bytes_to_transfer"`
}

// Options controls planning and execution.
type Options struct {
	// Direction selects push or pull. Empty means push.
	Direction Direction

	// DeleteMissing removes destination keys that have no source counterpart.
	DeleteMissing bool

	// DryRun reports mutating actions without performing them.
	DryRun bool

	// Workers bounds fingerprinting and transfer concurrency.
	Workers int
}

func (o Options) workers() int {
	if o.Workers <= 0 {
		return DefaultWorkers
	}
	return o.Workers
}

func (o Options) direction() Direction {
	if o.Direction == "" {
		return Push
	}
	return o.Direction
}

func summarize(actions []Action) PlanSummary {
	var s PlanSummary
	for _, a := range actions {
		switch a.Type {
		case ActionUpload:
			s.Uploads++
			s.BytesToTransfer += a.Size
		case ActionDownload:
			s.Downloads++
			s.BytesToTransfer += a.Size
		case ActionSkip:
			s.Skips++
		case ActionDelete:
			s.Deletes++
		case ActionFail:
			s.Failures++
		}
	}
	return s
}
