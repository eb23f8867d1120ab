package model

import "github.com/evergreen-ci/utility"

// APIStatus reports the running build and whether the store answers.
type APIStatus struct {
	BuildRevision *string `json:"build_revision"`
	ClientVersion *string `json:"client_version"`
	DatabaseOK    bool    `json:"database_ok"`
	DatabaseError *string `json:"database_error,omitempty"`
}

func NewAPIStatus(revision, version string, pingErr error) APIStatus {
	s := APIStatus{
		BuildRevision: utility.ToStringPtr(revision),
		ClientVersion: utility.ToStringPtr(version),
		DatabaseOK:    pingErr == nil,
	}
	if pingErr != nil {
		s.DatabaseError = utility.ToStringPtr(pingErr.Error())
	}
	return s
}
