package i18n

import (
	"embed"
	"io/fs"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/iamshubha/roy-dex-sub005/internal/config"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

const messagesDir = "messages"

//go:embed messages/*.toml
var messageFiles embed.FS

// Service translates message keys, e.g. the keys of hardware errors.
type Service struct {
	bundle      *i18n.Bundle
	matcher     language.Matcher
	defaultLang language.Tag
}

// New loads the embedded message files.
func New(config config.Server) (*Service, error) {
	bundle := i18n.NewBundle(config.I18n.DefaultLanguage)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.ReadDir(messageFiles, messagesDir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read message files")
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		if _, err := bundle.LoadMessageFileFS(messageFiles, path.Join(messagesDir, file.Name())); err != nil {
			return nil, errors.Wrapf(err, "failed to load message file %q", file.Name())
		}
	}

	return &Service{
		bundle:      bundle,
		matcher:     language.NewMatcher(bundle.LanguageTags()),
		defaultLang: config.I18n.DefaultLanguage,
	}, nil
}

// Translate returns the message of key in lang. Unknown keys are returned as is.
func (s *Service) Translate(key string, lang language.Tag, data ...map[string]any) string {
	localizer := i18n.NewLocalizer(s.bundle, lang.String(), s.defaultLang.String())

	cfg := &i18n.LocalizeConfig{MessageID: key}
	if len(data) > 0 {
		cfg.TemplateData = data[0]
	}

	msg, err := localizer.Localize(cfg)
	if err != nil {
		log.Debug().Err(err).Str("key", key).Str("lang", lang.String()).Msg("Failed to translate message")
		return key
	}

	return msg
}

// ParseAcceptLanguage picks the best supported language of an Accept-Language header.
func (s *Service) ParseAcceptLanguage(header string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return s.defaultLang
	}

	_, index, confidence := s.matcher.Match(tags...)
	if confidence == language.No {
		return s.defaultLang
	}

	return s.bundle.LanguageTags()[index]
}

// Tags lists the languages messages are available in.
func (s *Service) Tags() []language.Tag {
	return s.bundle.LanguageTags()
}
