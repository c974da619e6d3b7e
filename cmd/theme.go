package cmd

import (
	"fmt"

	"github.com/skoskinen/biblio/internal/config"
	"github.com/skoskinen/biblio/internal/storage"
	"github.com/skoskinen/biblio/internal/theme"
)

// ThemeCmd shows or changes the persisted color theme.
type ThemeCmd struct {
	Mode   string `arg:"" optional:"" help:"Theme to set: light, dark"`
	Toggle bool   `short:"t" help:"Switch between light and dark"`
}

func (t *ThemeCmd) Run() error {
	st, err := storage.Open(config.StoragePath)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	switch {
	case t.Toggle && t.Mode != "":
		return fmt.Errorf("pass either a theme name or --toggle, not both")
	case t.Toggle:
		mode, err := theme.Toggle(st)
		if err != nil {
			return err
		}
		fmt.Println(mode)
		return nil
	case t.Mode != "":
		if err := theme.Set(st, t.Mode); err != nil {
			return err
		}
		fmt.Println(t.Mode)
		return nil
	default:
		fmt.Println(theme.Load(st))
		return nil
	}
}
