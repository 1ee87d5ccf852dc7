// Package job loads the YAML job files that drive the finance, HR and
// procurement commands. JSON job files parse too.
package job

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Default output locations.
const (
	DefaultPeriod       = "2025-08"
	DefaultFinanceJSON  = "out/finance_report.json"
	DefaultFinanceCSV   = "out/finance_variances.csv"
	DefaultHRLog        = "out/hr_qna_log.csv"
	DefaultRegisterPath = "out/contracts_register.csv"
)

// FinanceJob drafts one variance report from a ledger file.
type FinanceJob struct {
	Period    string         `yaml:"period"`
	InputPath string         `yaml:"input_path"`
	Outputs   FinanceOutputs `yaml:"outputs"`
}

// FinanceOutputs names the finance report files.
type FinanceOutputs struct {
	JSONPath string `yaml:"json_path"`
	CSVPath  string `yaml:"csv_path"`
}

// HRJob answers questions against one policy document.
type HRJob struct {
	PolicyPath string    `yaml:"policy_path"`
	Questions  []string  `yaml:"questions"`
	Outputs    HROutputs `yaml:"outputs"`
}

// HROutputs names the Q&A log file.
type HROutputs struct {
	LogPath string `yaml:"log_path"`
}

// ProcurementJob summarizes a list of contract files into a register.
type ProcurementJob struct {
	Contracts []string           `yaml:"contracts"`
	Outputs   ProcurementOutputs `yaml:"outputs"`
}

// ProcurementOutputs names the register files. XLSXPath is optional.
type ProcurementOutputs struct {
	RegisterPath string `yaml:"register_path"`
	XLSXPath     string `yaml:"xlsx_path"`
}

// LoadFinance reads and validates a finance job.
func LoadFinance(path string) (*FinanceJob, error) {
	var j FinanceJob
	if err := load(path, &j); err != nil {
		return nil, err
	}
	j.Period = withDefault(j.Period, DefaultPeriod)
	j.Outputs.JSONPath = withDefault(j.Outputs.JSONPath, DefaultFinanceJSON)
	j.Outputs.CSVPath = withDefault(j.Outputs.CSVPath, DefaultFinanceCSV)
	if strings.TrimSpace(j.InputPath) == "" {
		return nil, eris.Errorf("job: %s: input_path is required", path)
	}
	return &j, nil
}

// LoadHR reads and validates an HR job.
func LoadHR(path string) (*HRJob, error) {
	var j HRJob
	if err := load(path, &j); err != nil {
		return nil, err
	}
	j.Outputs.LogPath = withDefault(j.Outputs.LogPath, DefaultHRLog)
	if strings.TrimSpace(j.PolicyPath) == "" {
		return nil, eris.Errorf("job: %s: policy_path is required", path)
	}
	if j.Questions == nil {
		j.Questions = []string{}
	}
	return &j, nil
}

// LoadProcurement reads and validates a procurement job.
func LoadProcurement(path string) (*ProcurementJob, error) {
	var j ProcurementJob
	if err := load(path, &j); err != nil {
		return nil, err
	}
	j.Outputs.RegisterPath = withDefault(j.Outputs.RegisterPath, DefaultRegisterPath)
	for i, c := range j.Contracts {
		if strings.TrimSpace(c) == "" {
			return nil, eris.Errorf("job: %s: contracts[%d] is empty", path, i)
		}
	}
	return &j, nil
}

func load(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "job: read %s", path)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return eris.Wrapf(err, "job: parse %s", path)
	}
	return nil
}

func withDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
