package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ukaji3/bizplan-go/pkg/bizplan/encoding"
	"github.com/ukaji3/bizplan-go/pkg/bizplan/normalize"
)

type charsCmd struct {
	from     string
	to       string
	docxSafe bool
	repair   string
	ascii    bool
}

func newCharsCmd() *cobra.Command {
	c := &charsCmd{}
	cmd := &cobra.Command{
		Use:   "chars [text...]",
		Short: "Convert Korean special characters in text or stdin",
		Long: `chars substitutes Korean typographic symbols (㈜ → (주), ① → (1), ...).
Without arguments the text is read from stdin and its encoding detected
unless --from is given.`,
		RunE: c.run,
	}
	cmd.Flags().StringVar(&c.from, "from", "", "Encoding of stdin: utf8, euc-kr, cp949 (default: detect)")
	cmd.Flags().StringVar(&c.to, "to", "utf8", "Output encoding: utf8, euc-kr, cp949")
	cmd.Flags().BoolVar(&c.docxSafe, "docx-safe", false, "Also narrow full-width characters and strip control characters")
	cmd.Flags().StringVar(&c.repair, "repair", "", "Repair broken characters using a context hint (e.g. 회사, 숫자)")
	cmd.Flags().BoolVar(&c.ascii, "ascii", false, "Replace non-ASCII runs with [?]")
	return cmd
}

func (c *charsCmd) run(cmd *cobra.Command, args []string) error {
	to, err := encoding.Lookup(c.to)
	if err != nil {
		return err
	}
	conv := encoding.NewConverter(normalize.Default)

	var res encoding.ConversionResult
	switch {
	case len(args) > 0:
		res = conv.ConvertString(strings.Join(args, " "), to)
	default:
		input, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		if c.from == "" {
			res = conv.AutoConvert(input, to)
		} else {
			from, err := encoding.Lookup(c.from)
			if err != nil {
				return err
			}
			res = conv.Convert(input, from, to)
		}
	}
	for _, e := range res.Errors {
		log.Warn().Str("from", string(res.OriginalEncoding)).Str("to", string(res.TargetEncoding)).Msg(e)
	}

	text := strings.TrimRight(res.Text, "\r\n")
	if c.repair != "" {
		text = encoding.RepairBrokenChars(text, c.repair)
	}
	if c.docxSafe {
		text = normalize.ToDOCXSafe(text)
	}
	if c.ascii {
		text = encoding.ToSafeASCII(text)
	}
	log.Debug().Int("converted", res.SpecialCharsConverted).Msg("special characters converted")

	_, err = cmd.OutOrStdout().Write(append(encoding.Encode(text, to), '\n'))
	return err
}
