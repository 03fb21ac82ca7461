package main

import (
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gofiber/fiber/v3"

	"github.com/T0mstone/simple-http-server/internal/config"
	"github.com/T0mstone/simple-http-server/internal/logging"
	"github.com/T0mstone/simple-http-server/internal/routes"
	"github.com/T0mstone/simple-http-server/internal/server"
	"github.com/T0mstone/simple-http-server/internal/version"
)

//go:embed README.md
var readme string

// cliOptions 汇总 CLI 标志解析后的结果，便于在测试中注入。
type cliOptions struct {
	configPath  string
	checkOnly   bool
	showVersion bool
	printReadme bool
	showHelp    bool
}

var (
	stdOut io.Writer = os.Stdout
	stdErr io.Writer = os.Stderr
)

func main() {
	opts, err := parseCLIFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(stdErr, err.Error())
		fmt.Fprintln(stdErr)
		printUsage(stdErr)
		os.Exit(2)
	}
	os.Exit(run(opts))
}

const usageText = `USAGE:
    simple-http-server [--] <path to config file>
        Run the server normally
    simple-http-server -h|--help
        Show this message and exit
    simple-http-server --check-config [--] <path to config file>
        Load and validate the config file, then exit
    simple-http-server --print-readme
        Write out this software's documentation
        in the form of a README.md file (to stdout)
    simple-http-server --version
        Print version information and exit`

func printUsage(w io.Writer) {
	fmt.Fprintln(w, usageText)
}

// parseCLIFlags 解析 CLI 参数。配置文件路径是唯一的位置参数；`--` 终止
// 标志解析，因此配置路径可以以 `-` 开头。未识别的标志、缺失或多余的位置
// 参数都作为错误返回，由 main 打印用法并以非零码退出。
func parseCLIFlags(args []string) (cliOptions, error) {
	fs := flag.NewFlagSet("simple-http-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts cliOptions
	fs.BoolVar(&opts.printReadme, "print-readme", false, "输出内嵌文档后退出")
	fs.BoolVar(&opts.checkOnly, "check-config", false, "仅校验配置后退出")
	fs.BoolVar(&opts.showVersion, "version", false, "显示版本信息")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			opts.showHelp = true
			return opts, nil
		}
		return cliOptions{}, err
	}

	if opts.printReadme || opts.showVersion {
		return opts, nil
	}

	switch fs.NArg() {
	case 0:
		return cliOptions{}, errors.New("缺少配置文件参数")
	case 1:
		opts.configPath = fs.Arg(0)
	default:
		return cliOptions{}, errors.New("参数过多")
	}

	return opts, nil
}

// run 根据解析到的 CLI 选项执行业务流程，并返回退出码，方便测试。
func run(opts cliOptions) int {
	switch {
	case opts.showHelp:
		fmt.Fprintln(stdOut, version.Full())
		printUsage(stdOut)
		return 0
	case opts.showVersion:
		printVersion()
		return 0
	case opts.printReadme:
		fmt.Fprint(stdOut, readme)
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stdErr, "加载配置失败: %v\n", err)
		return 1
	}

	logger, err := logging.InitLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(stdErr, "初始化日志失败: %v\n", err)
		return 1
	}

	// 启动遵循“配置 → 路由表 → 404 缓存 → 监听”顺序，全部完成之前不处理
	// 任何请求；这些结构随后以只读方式被所有并发 handler 共享。
	table := routes.Build(cfg.GetRoutes, cfg.Root, logger)

	if opts.checkOnly {
		fields := logging.BaseFields("check_config", opts.configPath)
		fields["routes"] = table.Len()
		fields["result"] = "ok"
		logger.WithFields(fields).Info("配置校验通过")
		return 0
	}

	errorPage := server.LoadErrorPage(cfg.NotFoundPath(), logger)

	app, err := server.NewApp(server.AppOptions{
		Logger:    logger,
		Table:     table,
		ErrorPage: errorPage,
		Root:      cfg.Root,
	})
	if err != nil {
		fmt.Fprintf(stdErr, "HTTP 服务构建失败: %v\n", err)
		return 1
	}

	ln := server.Bind(cfg.BindCandidates(), logger)
	if ln == nil {
		logger.WithFields(logging.BaseFields("bind_failed", opts.configPath)).Error("所有候选地址均绑定失败")
		return 1
	}

	fields := logging.BaseFields("startup", opts.configPath)
	fields["addr"] = ln.Addr().String()
	fields["routes"] = table.Len()
	fields["version"] = version.Full()
	logger.WithFields(fields).Info("配置加载完成，开始服务")

	if err := app.Listener(ln, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
		logger.WithFields(logging.BaseFields("serve_failed", opts.configPath)).Error(err.Error())
		return 1
	}
	return 0
}
