// Package relplan plans releases from Conventional Commits: it reads the
// commits since the latest release tag, decides the semantic version bump,
// and renders release notes.
//
// Related packages: config, commit, notes, runner, model, vcs, vcs/gitcli,
// vcs/gogit
package relplan

import "github.com/relplan/relplan/config"

// Config holds the configuration for relplan. This struct is intended for
// command-line use, so not all of its attributes are applicable to every
// operation.
//
// See "go doc github.com/relplan/relplan/config Config" for more information.
type Config = config.Config
