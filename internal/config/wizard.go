package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dooshek/celebcast/internal/fileops"
	"github.com/dooshek/celebcast/internal/logger"
	"github.com/dooshek/celebcast/internal/persona"
	"github.com/dooshek/celebcast/internal/types"
	"github.com/fatih/color"
)

func RunWizard() error {
	fileOps, err := fileops.NewDefaultFileOps()
	if err != nil {
		return fmt.Errorf("failed to initialize file operations: %w", err)
	}
	return runWizard(os.Stdin, os.Stdout, fileOps)
}

type prompter struct {
	reader *bufio.Reader
	out    io.Writer
	eof    bool
}

// ask prints the question and returns the trimmed answer, or def when the
// answer is empty. After input ends every question gets def.
func (p *prompter) ask(question, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", question, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", question)
	}

	response, err := p.reader.ReadString('\n')
	if err != nil && (err != io.EOF || response == "") {
		if err == io.EOF {
			p.eof = true
			return def, nil
		}
		return "", err
	}

	// Remove any control characters
	response = strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, strings.TrimSpace(response))

	if response == "" {
		return def, nil
	}
	return response, nil
}

func contains(options []string, v string) bool {
	for _, o := range options {
		if strings.EqualFold(o, v) {
			return true
		}
	}
	return false
}

// choose asks until the answer is one of options. A stored default that is
// not a valid option is replaced by fallback.
func (p *prompter) choose(question string, options []string, def, fallback string) (string, error) {
	if !contains(options, def) {
		def = fallback
	}
	for {
		answer, err := p.ask(fmt.Sprintf("%s (%s)", question, strings.Join(options, "/")), def)
		if err != nil {
			return "", err
		}
		for _, o := range options {
			if strings.EqualFold(o, answer) {
				return o, nil
			}
		}
		if p.eof {
			return "", io.ErrUnexpectedEOF
		}
		fmt.Fprintf(p.out, "Please choose one of: %s\n", strings.Join(options, ", "))
	}
}

func runWizard(in io.Reader, out io.Writer, fileOps fileops.FileOps) error {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)

	p := &prompter{reader: bufio.NewReader(in), out: out}

	existing, err := LoadConfigFrom(fileOps)
	if err != nil {
		logger.Warnf("Failed to load existing config: %v", err)
	}
	if existing == nil {
		existing = &types.Config{}
	}

	bold.Fprintln(out, "\n📺 Welcome to Celebcast Configuration Wizard!")
	fmt.Fprintln(out, "\nThis wizard will set up your API keys, providers and default voice.")
	fmt.Fprintln(out, "Press Enter to keep the value shown in brackets.")

	config := &types.Config{}

	cyan.Fprintln(out, "\nAPI keys")
	if config.Keys.GeminiKey, err = p.ask("Gemini API key", mask(existing.Keys.GeminiKey)); err != nil {
		return err
	}
	if config.Keys.OpenAIKey, err = p.ask("OpenAI API key (optional)", mask(existing.Keys.OpenAIKey)); err != nil {
		return err
	}
	if config.Keys.GroqKey, err = p.ask("Groq API key (optional)", mask(existing.Keys.GroqKey)); err != nil {
		return err
	}
	unmask(&config.Keys.GeminiKey, existing.Keys.GeminiKey)
	unmask(&config.Keys.OpenAIKey, existing.Keys.OpenAIKey)
	unmask(&config.Keys.GroqKey, existing.Keys.GroqKey)

	cyan.Fprintln(out, "\nProviders")
	if config.Script.Provider, err = p.choose("Script provider",
		[]string{string(types.ProviderGemini), string(types.ProviderOpenAI), string(types.ProviderGroq)},
		existing.GetScriptConfig().Provider, string(types.ProviderGemini)); err != nil {
		return err
	}
	if config.TTS.Provider, err = p.choose("Voice provider",
		[]string{string(types.ProviderGemini), string(types.ProviderOpenAI), string(types.ProviderRealtime)},
		existing.GetTTSConfig().Provider, string(types.ProviderGemini)); err != nil {
		return err
	}

	cyan.Fprintln(out, "\nVoices")
	ids := make([]string, 0, len(persona.Catalog()))
	for _, v := range persona.Catalog() {
		fmt.Fprintf(out, "  %-8s %s - %s\n", v.ID, v.Name, v.Description)
		ids = append(ids, v.ID)
	}
	if config.TTS.Voice, err = p.choose("Default voice", ids, existing.TTS.Voice, persona.DefaultID); err != nil {
		return err
	}

	cyan.Fprintln(out, "\nTones")
	for i, tone := range persona.Tones() {
		fmt.Fprintf(out, "  %d. %s\n", i+1, tone)
	}
	defTone := existing.DefaultTone
	if _, ok := persona.ResolveTone(defTone); !ok {
		defTone = persona.DefaultTone
	}
	for {
		answer, err := p.ask("Default tone (number or name)", defTone)
		if err != nil {
			return err
		}
		if tone, ok := persona.ResolveTone(answer); ok {
			config.DefaultTone = tone
			break
		}
		if p.eof {
			return io.ErrUnexpectedEOF
		}
		fmt.Fprintln(out, "Unknown tone, try again.")
	}

	cyan.Fprintln(out, "\nAudio")
	if config.Audio.Backend, err = p.choose("Audio backend",
		[]string{types.AudioBackendMalgo, types.AudioBackendCommand},
		existing.GetAudioConfig().Backend, types.AudioBackendMalgo); err != nil {
		return err
	}

	if err := SaveConfigTo(fileOps, config); err != nil {
		logger.Error("Failed to save config", err)
		return err
	}

	green.Fprintln(out, "\n✅ Configuration saved successfully!")
	fmt.Fprintf(out, "Script: %s, voice: %s (%s), tone: %s\n",
		config.Script.Provider, config.TTS.Provider, config.TTS.Voice, config.DefaultTone)

	return nil
}

func mask(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

// unmask restores the stored key when the user accepted the masked default.
func unmask(answer *string, stored string) {
	if stored != "" && *answer == mask(stored) {
		*answer = stored
	}
}
