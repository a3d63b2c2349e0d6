package consent

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spance/capture-arbiter/arbiter"
	"github.com/spance/capture-arbiter/arbiter/definitions"
	"github.com/spance/capture-arbiter/arbiter/helper"
	"github.com/spance/capture-arbiter/utils"
)

// Prompt asks a person on a terminal before any hardware is granted. A "Y"
// hands the request back to the arbiter; anything else denies it. Lines may
// be shared with other readers of the same terminal.
type Prompt struct {
	Lines *utils.LineReader
	Out   io.Writer
	Lang  string
}

func NewPrompt(lines *utils.LineReader, out io.Writer, lang string) *Prompt {
	return &Prompt{Lines: lines, Out: out, Lang: lang}
}

func (p *Prompt) TryResolve(ctx context.Context, req definitions.CaptureRequest, cb *arbiter.Callback) bool {
	if !req.MicrophoneRequested() && !req.WebcamRequested() {
		return false
	}

	fmt.Fprint(p.Out, helper.BuildConsentPrompt(req, p.Lang))

	answer, err := p.Lines.ReadLine(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("[Prompt] no answer, denying capture request")
		cb.Run(nil, definitions.ResultDeniedOther)
		return true
	}

	if strings.ToUpper(strings.TrimSpace(answer)) == "Y" {
		return false
	}
	cb.Run(nil, definitions.ResultDeniedOther)
	return true
}
