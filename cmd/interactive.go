package cmd

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"go.dedis.ch/secretrecover/config"
	"go.dedis.ch/secretrecover/interpolation"
)

// -----------------------------------------------------------------------------
// Interactive prompt

var actionOpts = []string{
	"🔑 Recover secret",
	"🔍 Verify shares",
	"🧮 Change strategy",
	"🍃 Exit",
}

type session struct {
	path string
	conf *config.Config
}

var actions = map[string]func(*session) error{
	actionOpts[0]: recoverSecret,
	actionOpts[1]: verifyShares,
	actionOpts[2]: changeStrategy,
	actionOpts[3]: exit,
}

// StartInteractive asks for a share file and loops on actions until exit
func StartInteractive(conf *config.Config) error {
	s := &session{conf: conf}

	err := survey.AskOne(&survey.Input{
		Message: "Path of the share file:",
	}, &s.path, survey.WithValidator(survey.Required))
	if err != nil {
		return err
	}

	var action string
	for {
		prompt := &survey.Select{
			Message: "What do you want to do ?",
			Options: actionOpts,
		}

		err := survey.AskOne(prompt, &action)
		if err != nil {
			return err
		}

		method := actions[action]
		err = method(s)
		if err != nil {
			fmt.Println(err)
		}
	}
}

func recoverSecret(s *session) error {
	return Solve(s.path, s.conf, os.Stdout)
}

func verifyShares(s *session) error {
	return Verify(s.path, s.conf, os.Stdout)
}

func changeStrategy(s *session) error {
	opts := make([]string, len(interpolation.Strategies))
	for i, strategy := range interpolation.Strategies {
		opts[i] = string(strategy)
	}

	var strategy string
	err := survey.AskOne(&survey.Select{
		Message: "Strategy:",
		Options: opts,
		Default: s.conf.Strategy,
	}, &strategy)
	if err != nil {
		return err
	}

	s.conf.Strategy = strategy
	return s.conf.Validate()
}

func exit(s *session) error {
	fmt.Println("bye 👋")
	os.Exit(0)
	return nil
}
