package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/moethet/portfolio/assets"
	"github.com/moethet/portfolio/internal/config"
	"github.com/moethet/portfolio/internal/content"
	"github.com/moethet/portfolio/pkg/i18n"
	"github.com/moethet/portfolio/pkg/logger"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check-content",
		Short: "Validate bundled content, translations and mail templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Read(opts.envFiles...)
			if err != nil {
				return err
			}

			catalog, err := content.NewCatalog(assets.FS, cfg.I18n.Languages...)
			if err != nil {
				return err
			}
			svc, err := newI18n(cfg.I18n, logger.NewNope())
			if err != nil {
				return err
			}
			if err := checkTranslations(svc, uiNamespace); err != nil {
				return err
			}
			if _, err := newRenderer(cfg.Mailer.DefaultLayout); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "content ok: %d languages, %d translation keys\n",
				catalog.Len(), len(svc.Keys(svc.DefaultLanguage(), uiNamespace)))
			return nil
		},
	}
}

// checkTranslations reports keys that are missing from, or only present
// in, a non-default language.
func checkTranslations(svc *i18n.I18n, namespace string) error {
	base := svc.Keys(svc.DefaultLanguage(), namespace)
	if len(base) == 0 {
		return fmt.Errorf("no %q translations for %s", namespace, svc.DefaultLanguage())
	}

	var errs []error
	for _, lang := range svc.Languages()[1:] {
		keys := svc.Keys(lang, namespace)
		for _, k := range base {
			if _, found := slices.BinarySearch(keys, k); !found {
				errs = append(errs, fmt.Errorf("%s: missing %s", lang, k))
			}
		}
		for _, k := range keys {
			if _, found := slices.BinarySearch(base, k); !found {
				errs = append(errs, fmt.Errorf("%s: unknown key %s", lang, k))
			}
		}
	}
	return errors.Join(errs...)
}
