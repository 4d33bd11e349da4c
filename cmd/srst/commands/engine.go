package commands

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/rossyndicate/srst/internal/engine"
	"github.com/rossyndicate/srst/internal/engine/fake"
	"github.com/rossyndicate/srst/internal/engine/remote"
	"github.com/rossyndicate/srst/internal/log"
)

const (
	engineKindRemote = "remote"
	engineKindFake   = "fake"
)

// engineFlags are the engine selection flags shared by the commands that talk to the engine.
type engineFlags struct {
	kind    string
	url     string
	token   string
	project string
	rps     float64
}

func registerEngineFlags(cmd *kingpin.CmdClause) *engineFlags {
	f := &engineFlags{}

	cmd.Flag("engine", "Engine implementation (remote, fake).").Default(engineKindRemote).EnumVar(&f.kind, engineKindRemote, engineKindFake)
	cmd.Flag("remote-url", "Remote engine gateway base URL.").Envar("SRST_REMOTE_URL").StringVar(&f.url)
	cmd.Flag("remote-token", "Remote engine bearer token.").Envar("SRST_REMOTE_TOKEN").StringVar(&f.token)
	cmd.Flag("remote-project", "Remote engine cloud project.").Envar("SRST_REMOTE_PROJECT").StringVar(&f.project)
	cmd.Flag("remote-rps", "Maximum requests per second to the remote engine.").Default("5").Float64Var(&f.rps)

	return f
}

// newEngine creates the selected engine, defaultProject is used when no project flag is set.
func (f engineFlags) newEngine(defaultProject string, logger log.Logger) (engine.Engine, error) {
	switch f.kind {
	case engineKindFake:
		logger.Warningf("Using fake engine, nothing will be exported")
		return fake.NewEngine(fake.EngineConfig{Logger: logger})
	case engineKindRemote:
		project := f.project
		if project == "" {
			project = defaultProject
		}
		return remote.NewEngine(remote.EngineConfig{
			BaseURL:           f.url,
			Project:           project,
			Token:             f.token,
			RequestsPerSecond: f.rps,
			Logger:            logger,
		})
	}

	return nil, fmt.Errorf("unknown engine %q", f.kind)
}
