package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/conf"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/provider"
	"github.com/thirusolai/gym-backend-h4fitness2/pkg/jwt"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var rootCmd = &cobra.Command{
	Use:   "gym-backend",
	Short: "Gym billing service",
	Long:  `Member billing, renewals, payments and follow-ups for the gym front desk.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*conf.AppConfig, error) {
	confFile, _ := cmd.Flags().GetString("config")
	appConfig, err := conf.NewConfig(confFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	port, _ := cmd.Flags().GetInt("port")
	if port > 0 {
		appConfig.Port = port
	}

	return appConfig, nil
}

var apiCmd = &cobra.Command{
	Use:   "serve:api",
	Short: "Starts the billing HTTP API",
	Long:  `Starts the HTTP API and the outbox relay worker.`,
	Run: func(cmd *cobra.Command, args []string) {
		appConfig, err := loadConfig(cmd)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		app, cleanup, err := InitializeAPIApp(appConfig)
		if err != nil {
			log.Fatalf("failed to init api app: %v", err)
		}
		defer cleanup()

		if err := app.Run(); err != nil {
			log.Printf("api app stopped with error: %v", err)
		}
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token:issue",
	Short: "Issues an operator bearer token",
	Long:  `Signs a bearer token for a front desk operator with the configured JWT keys.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appConfig, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		manager, err := provider.ProvideJwtManager(appConfig)
		if err != nil {
			return err
		}
		if manager == nil {
			return errors.New("jwt is disabled in the config")
		}

		userID, _ := cmd.Flags().GetString("user-id")
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		token, err := issueToken(manager, userID, name, email, time.Now().Add(ttl))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

// issueToken signs the operator the auth middleware reads back.
func issueToken(manager *jwt.Manager, userID, name, email string, expiresAt time.Time) (string, error) {
	id := primitive.NewObjectID()
	if userID != "" {
		parsed, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			return "", fmt.Errorf("invalid user id %q: %w", userID, err)
		}
		id = parsed
	}
	if name == "" {
		return "", errors.New("name is required")
	}
	return manager.Issue(jwt.Operator{UserID: id.Hex(), Name: name, Email: email}, expiresAt)
}

func init() {
	tokenCmd.Flags().String("user-id", "", "operator id (hex ObjectID), generated when empty")
	tokenCmd.Flags().String("name", "", "operator display name")
	tokenCmd.Flags().String("email", "", "operator email")
	tokenCmd.Flags().Duration("ttl", 12*time.Hour, "token lifetime")

	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.PersistentFlags().IntP("port", "p", 0, "Port for the server to listen on, overrides the value in the config file")
	rootCmd.PersistentFlags().StringP("config", "c", "internal/conf/config.yaml", "path to config file")
}
