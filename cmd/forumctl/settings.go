package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/forum-backend/internal/adapter/postgres"
	auditrepo "github.com/heartmarshall/forum-backend/internal/adapter/postgres/audit"
	sitesettingrepo "github.com/heartmarshall/forum-backend/internal/adapter/postgres/sitesetting"
	userrepo "github.com/heartmarshall/forum-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/forum-backend/internal/domain"
	sitesettingsvc "github.com/heartmarshall/forum-backend/internal/service/sitesetting"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect site settings",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective site settings as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			svc := sitesettingsvc.NewService(e.logger,
				sitesettingrepo.New(e.pool),
				userrepo.New(e.pool),
				auditrepo.New(e.pool),
				postgres.NewTxManager(e.pool),
				e.cfg.Site.Defaults(),
			)
			s, err := svc.Get(cmd.Context())
			if err != nil {
				return fmt.Errorf("get site settings: %w", err)
			}
			return writeSettingsYAML(cmd.OutOrStdout(), s)
		},
	})
	return cmd
}

// settingsDoc uses the same keys as the site section of config.yaml, so the
// output can be pasted back as defaults.
type settingsDoc struct {
	MinTrustToCreateTopic         int        `yaml:"min_trust_to_create_topic"`
	MinTrustToSendMessages        int        `yaml:"min_trust_to_send_messages"`
	MinTrustToSendEmailMessages   int        `yaml:"min_trust_to_send_email_messages"`
	AllowDuplicateTopicTitles     bool       `yaml:"allow_duplicate_topic_titles"`
	EnableStagedUsers             bool       `yaml:"enable_staged_users"`
	EnablePrivateEmailMessages    bool       `yaml:"enable_private_email_messages"`
	MinTopicTitleLength           int        `yaml:"min_topic_title_length"`
	MaxTopicTitleLength           int        `yaml:"max_topic_title_length"`
	MinPersonalMessageTitleLength int        `yaml:"min_personal_message_title_length"`
	MinPostLength                 int        `yaml:"min_post_length"`
	MinPersonalMessagePostLength  int        `yaml:"min_personal_message_post_length"`
	MaxTargetRecipients           int        `yaml:"max_target_recipients"`
	UpdatedAt                     *time.Time `yaml:"updated_at,omitempty"`
}

func writeSettingsYAML(w io.Writer, s domain.SiteSettings) error {
	doc := settingsDoc{
		MinTrustToCreateTopic:         int(s.MinTrustToCreateTopic),
		MinTrustToSendMessages:        int(s.MinTrustToSendMessages),
		MinTrustToSendEmailMessages:   int(s.MinTrustToSendEmailMessages),
		AllowDuplicateTopicTitles:     s.AllowDuplicateTopicTitles,
		EnableStagedUsers:             s.EnableStagedUsers,
		EnablePrivateEmailMessages:    s.EnablePrivateEmailMessages,
		MinTopicTitleLength:           s.MinTopicTitleLength,
		MaxTopicTitleLength:           s.MaxTopicTitleLength,
		MinPersonalMessageTitleLength: s.MinPersonalMessageTitleLength,
		MinPostLength:                 s.MinPostLength,
		MinPersonalMessagePostLength:  s.MinPersonalMessagePostLength,
		MaxTargetRecipients:           s.MaxTargetRecipients,
	}
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt.UTC()
		doc.UpdatedAt = &t
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
