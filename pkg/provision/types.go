package provision

import "strings"

// RequestType identifies the stack lifecycle event that triggered an
// invocation.
type RequestType string

const (
	RequestCreate RequestType = "Create"
	RequestUpdate RequestType = "Update"
	RequestDelete RequestType = "Delete"
)

// Status is the overall outcome of an invocation as reported to the
// orchestrator.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

// CreateOutcome is the tagged result of an IdentityStore.CreateUser call.
type CreateOutcome string

const (
	// OutcomeCreated means the user did not exist and was created.
	OutcomeCreated CreateOutcome = "created"
	// OutcomeAlreadyExists means the user was already present. The engine
	// treats it as provisioned and must not rotate its credentials.
	OutcomeAlreadyExists CreateOutcome = "already_exists"
)

// GroupUsers binds one access group to the users that belong to it for this
// invocation.
type GroupUsers struct {
	Group string
	Users []string
}

// GroupMembership is the canonical, ordered form of the caller-supplied
// membership data. It is rebuilt from the raw properties on every invocation
// and never persisted; the external stores hold the durable state.
type GroupMembership []GroupUsers

// Request is the normalized input to a single engine run.
type Request struct {
	Type       RequestType
	Membership GroupMembership
}

// SecretPayload is the document written to the secret store for each created
// user.
type SecretPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Result is the single outcome record an engine run produces. Exactly one
// Result exists per invocation and it is reported to the orchestrator exactly
// once, whatever happened.
type Result struct {
	Status Status
	Reason string
	Data   map[string]string
}

// SuccessResult builds the success outcome carrying the users that were
// actually created. The set is empty on a no-op delete or when every user
// already existed.
func SuccessResult(created []string) Result {
	return Result{
		Status: StatusSuccess,
		Reason: "operation completed",
		Data:   map[string]string{"UsersCreated": strings.Join(created, ",")},
	}
}

// FailureResult builds the failure outcome from the error that aborted the
// invocation. The orchestrator surfaces the reason string verbatim.
func FailureResult(err error) Result {
	return Result{
		Status: StatusFailed,
		Reason: err.Error(),
		Data:   map[string]string{"Error": err.Error()},
	}
}
