package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"employees/cmd/client/cmd/types"
	"employees/internal/app/client"
	"employees/internal/app/client/config"
	"employees/internal/utils/logger"
)

var (
	cfgFile    string
	debug      bool
	jsonOutput bool
	serverAddr string
)

var rootCmd = &cobra.Command{
	Use:   "employees",
	Short: "Employees - клиент реестра сотрудников",
	Long: `Employees — консольный клиент для сервера записей о сотрудниках.

Позволяет просматривать, искать, создавать, редактировать и удалять записи.
Поля формы проверяются до отправки теми же правилами, что и на сервере.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		alert := color.New(color.FgRed, color.Bold)
		if errors.Is(err, client.ErrUnavailable) {
			alert.Fprintf(os.Stderr, "Сервер недоступен: %v\n", err)
		} else {
			alert.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	// Загружаем конфигурацию
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Переопределяем настройки из флагов командной строки
	if serverAddr != "" {
		cfg.ServerAddress = serverAddr
	}

	env := cfg.Env
	if debug {
		env = logger.EnvLocal
	}
	log := logger.New(env)
	if !debug {
		log = logger.Discard()
	}

	app := client.New(cfg, log)
	cmd.SetContext(types.WithApp(cmd.Context(), app))
	return nil
}

func loadConfig() (*config.Config, error) {
	v := viper.GetViper()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		// Ищем конфиг в стандартных местах
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".employees"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		// Конфиг не найден, используем значения по умолчанию
	}

	return config.Load(v)
}

func init() {
	// Глобальные флаги
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "вывод в формате JSON")
	rootCmd.PersistentFlags().StringVar(&serverAddr, "server", "", "адрес сервера (host:port)")

	// Команды будут добавлены в init() соответствующих файлов
}
