package terminator

import (
	"encoding/json"
)

// Outcomes reported in a Result.
const (
	ResultTooFewInstances     = "too few instances in group"
	ResultNotEnoughHealthy    = "not enough healthy instances in group"
	ResultInstanceTerminated  = "instance terminated"
	ResultTerminationFailed   = "instance termination failed"
	ResultDryRunNotTerminated = "dry run, instance not terminated"
)

// Result is one entry in the report returned from a pass.
type Result struct {
	// Group the entry is about. Skip entries always use
	// an implicit key (the AutoScaling Group name).
	Group GroupKey

	// One of the Result* constants.
	Result string

	// ID of the instance terminated (or that failed to terminate).
	InstanceID string

	// Error message if the termination failed.
	Error string
}

// resultJSON is the wire form of a Result. The group name goes in
// either autoscalingGroupName or instanceTerminatorGroupName.
type resultJSON struct {
	AutoScalingGroupName        string `json:"autoscalingGroupName,omitempty"`
	InstanceTerminatorGroupName string `json:"instanceTerminatorGroupName,omitempty"`
	Result                      string `json:"result"`
	InstanceID                  string `json:"instanceId,omitempty"`
	Error                       string `json:"error,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (r Result) MarshalJSON() ([]byte, error) {
	v := resultJSON{
		Result:     r.Result,
		InstanceID: r.InstanceID,
		Error:      r.Error,
	}
	if r.Group.Explicit {
		v.InstanceTerminatorGroupName = r.Group.Name
	} else {
		v.AutoScalingGroupName = r.Group.Name
	}
	return json.Marshal(v)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Result) UnmarshalJSON(b []byte) error {
	var v resultJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v.InstanceTerminatorGroupName != "" {
		r.Group = ExplicitGroup(v.InstanceTerminatorGroupName)
	} else {
		r.Group = ImplicitGroup(v.AutoScalingGroupName)
	}
	r.Result = v.Result
	r.InstanceID = v.InstanceID
	r.Error = v.Error
	return nil
}
