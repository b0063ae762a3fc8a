package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"miniontgt/pkg/command"
	"miniontgt/pkg/matcher"
	"miniontgt/pkg/nodegroup"
	"miniontgt/pkg/target"
)

var (
	usePCRE       bool
	useList       bool
	useGrain      bool
	useGrainPCRE  bool
	usePillar     bool
	usePillarPCRE bool
	useIPCIDR     bool
	useNodeGroup  bool
	useCompound   bool

	delimiter     string
	argsSeparator string
	rosterFile    string
	configFile    string
	logLevel      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "miniontgt [flags] <target> <function[,function...]> [arguments]",
		Short: "Match a target expression against a candidate roster",
		Long: `miniontgt resolves a target expression (glob, pcre, list, grain, pillar,
ipcidr, nodegroup or compound) against a YAML roster of candidates and
prints the planned function calls for every match.

Exit codes: 0 matched, 1 usage or parse error, 2 nothing matched.`,
		Args: cobra.MinimumNArgs(2),
		RunE: run,
	}

	rootCmd.Flags().BoolVarP(&usePCRE, "pcre", "E", false, "Target is a PCRE regular expression matched against candidate ids")
	rootCmd.Flags().BoolVarP(&useList, "list", "L", false, "Target is a comma/whitespace delimited list of candidate ids")
	rootCmd.Flags().BoolVarP(&useGrain, "grain", "G", false, "Target is a grain key path and value glob")
	rootCmd.Flags().BoolVar(&useGrainPCRE, "grain-pcre", false, "Target is a grain key path and value regular expression")
	rootCmd.Flags().BoolVarP(&usePillar, "pillar", "I", false, "Target is a pillar key path and value glob")
	rootCmd.Flags().BoolVar(&usePillarPCRE, "pillar-pcre", false, "Target is a pillar key path and value regular expression")
	rootCmd.Flags().BoolVarP(&useIPCIDR, "ipcidr", "S", false, "Target is an IP address or CIDR block")
	rootCmd.Flags().BoolVarP(&useNodeGroup, "nodegroup", "N", false, "Target is a nodegroup name from the master config")
	rootCmd.Flags().BoolVarP(&useCompound, "compound", "C", false, "Target is a compound expression")

	rootCmd.Flags().StringVar(&delimiter, "delimiter", ":", "Delimiter for grain/pillar key paths")
	rootCmd.Flags().StringVar(&argsSeparator, "args-separator", command.DefaultSeparator, "Separator between compound command functions and argument groups")
	rootCmd.Flags().StringVarP(&rosterFile, "roster", "r", "", "Candidate roster file (required)")
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "Master config file providing nodegroups (optional)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.MarkFlagRequired("roster")
	rootCmd.MarkFlagsMutuallyExclusive("pcre", "list", "grain", "grain-pcre",
		"pillar", "pillar-pcre", "ipcidr", "nodegroup", "compound")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	logrus.SetLevel(level)

	groups := nodegroup.Table{}
	if configFile != "" {
		groups, err = nodegroup.Load(configFile)
		if err != nil {
			return fmt.Errorf("load nodegroups: %w", err)
		}
	}

	candidates, err := matcher.LoadRoster(rosterFile)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}

	m := matcher.New(groups, delimiter)
	pred, err := m.Compile(selectedKind(), args[0])
	if err != nil {
		return fmt.Errorf("parse target: %w", err)
	}

	calls, err := command.Split(args[1], strings.Join(args[2:], " "), argsSeparator)
	if err != nil {
		return fmt.Errorf("parse command: %w", err)
	}

	matched, err := m.Select(pred, candidates)
	if err != nil {
		return err
	}

	if len(matched) == 0 {
		fmt.Fprintln(os.Stderr, "no candidates matched target")
		os.Exit(2)
	}

	return printPlan(matched, calls)
}

// selectedKind 把互斥的类型标志折算成目标类型名，默认 glob
func selectedKind() string {
	switch {
	case usePCRE:
		return string(target.KindRegex)
	case useList:
		return string(target.KindList)
	case useGrain:
		return string(target.KindGrain)
	case useGrainPCRE:
		return string(target.KindGrainRegex)
	case usePillar:
		return string(target.KindPillar)
	case usePillarPCRE:
		return string(target.KindPillarRegex)
	case useIPCIDR:
		return string(target.KindIPCIDR)
	case useNodeGroup:
		return string(target.KindNodeGroup)
	case useCompound:
		return string(target.KindCompound)
	default:
		return string(target.KindGlob)
	}
}

// printPlan 按匹配顺序输出每个候选的调用计划
func printPlan(matched []*target.Candidate, calls []command.Call) error {
	// 手工构造映射节点，保证输出顺序与候选顺序一致
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, c := range matched {
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: c.ID}
		value := &yaml.Node{}
		if err := value.Encode(calls); err != nil {
			return fmt.Errorf("encode plan: %w", err)
		}
		root.Content = append(root.Content, key, value)
	}

	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(2)
	if err := encoder.Encode(root); err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	return encoder.Close()
}
