package credentials

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/travigo/trains/pkg/util"
)

var ErrMissingCredential = errors.New("could not find credential")

// Source names where a secret can be found. The environment variable wins over the file.
type Source struct {
	Name            string
	EnvironmentName string
	FilePath        string
}

// Credentials are the Transport API application id and key, resolved once at startup
type Credentials struct {
	AppID  string
	AppKey string
}

// Resolve looks up both secrets and fails if either cannot be found
func Resolve(appID Source, appKey Source) (*Credentials, error) {
	env := util.GetEnvironmentVariables()

	id, err := appID.resolve(env)
	if err != nil {
		return nil, err
	}

	key, err := appKey.resolve(env)
	if err != nil {
		return nil, err
	}

	return &Credentials{
		AppID:  id,
		AppKey: key,
	}, nil
}

func (s Source) resolve(env map[string]string) (string, error) {
	if s.EnvironmentName != "" {
		if value := strings.TrimSpace(env[s.EnvironmentName]); value != "" {
			log.Debug().Str("credential", s.Name).Str("env", s.EnvironmentName).Msg("Read credential from environment")
			return value, nil
		}
	}

	if s.FilePath != "" {
		contents, err := os.ReadFile(s.FilePath)
		if err == nil {
			if value := strings.TrimSpace(string(contents)); value != "" {
				log.Debug().Str("credential", s.Name).Str("file", s.FilePath).Msg("Read credential from file")
				return value, nil
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("reading credential %s from %s: %w", s.Name, s.FilePath, err)
		}
	}

	return "", fmt.Errorf("%w %s (env %s, file %s)", ErrMissingCredential, s.Name, s.EnvironmentName, s.FilePath)
}
