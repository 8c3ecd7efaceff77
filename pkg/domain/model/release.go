package model

// ReleaseRequest describes the release to create at the hosting API
type ReleaseRequest struct {
	Owner           string // Repository owner
	Repo            string // Repository name
	TagName         string // Release tag name
	Name            string // Release display name
	Body            string // Release notes
	TargetCommitish string // Commit the tag points at; empty lets the API use the default branch head
	Draft           bool
	Prerelease      bool
}

// NewReleaseRequest derives a release request from a merge event. The pull
// request title becomes the tag and must pass ValidateVersion before a
// request can exist; the body is carried over as the release notes even when
// empty.
func NewReleaseRequest(ev *MergeEvent) (*ReleaseRequest, error) {
	if err := ValidateVersion(ev.Title); err != nil {
		return nil, err
	}

	return &ReleaseRequest{
		Owner:           ev.Owner,
		Repo:            ev.Repo,
		TagName:         ev.Title,
		Name:            "Release " + ev.Title,
		Body:            ev.Body,
		TargetCommitish: ev.MergeCommitSHA,
		Draft:           false,
		Prerelease:      false,
	}, nil
}

// PublishedRelease represents a release created at the hosting API
type PublishedRelease struct {
	ID      int64  // Release identifier assigned by the API
	TagName string // Release tag name
	Name    string // Release display name
	HTMLURL string // Web URL of the release
}
