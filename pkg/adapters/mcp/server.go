// Package mcp exposes the engines as an MCP tool surface so agent hosts
// can drive an adventure or a shopping conversation over stdio or SSE.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"parley/internal/logging"
	"parley/pkg/catalog"
	"parley/pkg/domain"
	"parley/pkg/gamemaster"
	"parley/pkg/session"
	"parley/pkg/storefront"
)

// Server wraps both engines and exposes them as an MCP server. Every tool
// returns speakable text; session state lives in the session manager.
type Server struct {
	gm        *gamemaster.Engine
	shop      *storefront.Engine
	sessions  *session.Manager
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets a structured logger for the server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates an MCP server over the given engines and session manager.
func NewServer(gm *gamemaster.Engine, shop *storefront.Engine, sessions *session.Manager, version string, opts ...Option) *Server {
	s := &Server{
		gm:        gm,
		shop:      shop,
		sessions:  sessions,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("parley-mcp", version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerAdventureTools()
	s.registerShoppingTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withSession runs fn against a loaded session under its lock and persists
// the mutated session afterwards.
func (s *Server) withSession(ctx context.Context, sessionID string, fn func(*domain.Session) string) (string, error) {
	var text string
	err := s.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		sess, err := s.sessions.Store().Load(ctx, sessionID)
		if err != nil {
			return err
		}
		text = fn(sess)
		return s.sessions.Store().Save(ctx, sessionID, sess)
	})
	return text, err
}

func (s *Server) registerAdventureTools() {
	// TOOL: start_adventure
	s.mcpServer.AddTool(mcp.NewTool("start_adventure",
		mcp.WithDescription("Start a new adventure session. Returns the session id and the opening scene."),
		mcp.WithString("player_name", mcp.Description("Name the narrator addresses the player by (optional)")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		playerName, _ := args["player_name"].(string)

		sess, err := s.sessions.Start(ctx, s.gm.World().Start())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("start failed: %v", err)), nil
		}
		text, err := s.withSession(ctx, sess.ID, func(sess *domain.Session) string {
			return s.gm.Start(sess, playerName)
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("start failed: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("session_id: %s\n\n%s", sess.ID, text)), nil
	})

	// TOOL: get_scene
	s.mcpServer.AddTool(mcp.NewTool("get_scene",
		mcp.WithDescription("Re-describe the player's current scene without changing any state."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Adventure session id")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sessionID, err := request.RequireString("session_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		sess, err := s.sessions.Load(ctx, sessionID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
		}
		return mcp.NewToolResultText(s.gm.SceneText(sess)), nil
	})

	// TOOL: player_action
	s.mcpServer.AddTool(mcp.NewTool("player_action",
		mcp.WithDescription("Apply the player's spoken action to the adventure and return the narrated outcome."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Adventure session id")),
		mcp.WithString("text", mcp.Required(), mcp.Description("What the player said")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sessionID, err := request.RequireString("session_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		input, err := request.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		text, err := s.withSession(ctx, sessionID, func(sess *domain.Session) string {
			return s.gm.Apply(sess, input).Text
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("action failed: %v", err)), nil
		}
		return mcp.NewToolResultText(text), nil
	})

	// TOOL: show_journal
	s.mcpServer.AddTool(mcp.NewTool("show_journal",
		mcp.WithDescription("Read back the player's journal, inventory and recent travels."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Adventure session id")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sessionID, err := request.RequireString("session_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		sess, err := s.sessions.Load(ctx, sessionID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
		}
		return mcp.NewToolResultText(gamemaster.JournalText(sess)), nil
	})

	// TOOL: restart_adventure
	s.mcpServer.AddTool(mcp.NewTool("restart_adventure",
		mcp.WithDescription("Reset the adventure to the opening scene, keeping the player's name."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Adventure session id")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sessionID, err := request.RequireString("session_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		text, err := s.withSession(ctx, sessionID, func(sess *domain.Session) string {
			return s.gm.Restart(sess)
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("restart failed: %v", err)), nil
		}
		return mcp.NewToolResultText(text), nil
	})
}

func (s *Server) registerShoppingTools() {
	// TOOL: start_shopping
	s.mcpServer.AddTool(mcp.NewTool("start_shopping",
		mcp.WithDescription("Start a new shopping session. Returns the session id and a greeting."),
		mcp.WithString("customer_name", mcp.Description("Name to greet the customer by (optional)")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		customerName, _ := args["customer_name"].(string)

		sess, err := s.sessions.Start(ctx, "")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("start failed: %v", err)), nil
		}
		text, err := s.withSession(ctx, sess.ID, func(sess *domain.Session) string {
			return s.shop.Start(sess, customerName)
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("start failed: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("session_id: %s\n\n%s", sess.ID, text)), nil
	})

	// TOOL: search_products
	s.mcpServer.AddTool(mcp.NewTool("search_products",
		mcp.WithDescription("Search the catalog. All filters are optional and combined with AND."),
		mcp.WithString("query", mcp.Description("Free-text match against product names and descriptions")),
		mcp.WithString("category", mcp.Description("Category name; spoken synonyms like 'phones' are accepted")),
		mcp.WithNumber("min_price", mcp.Description("Lowest acceptable price, inclusive")),
		mcp.WithNumber("max_price", mcp.Description("Highest acceptable price, inclusive")),
		mcp.WithString("color", mcp.Description("Color filter")),
		mcp.WithString("size", mcp.Description("Size filter, e.g. M or XL")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		// Tool hosts send loosely typed filter values; ParseFilters
		// absorbs strings-for-numbers and unknown keys.
		raw := map[string]any{
			"q":         args["query"],
			"category":  args["category"],
			"min_price": args["min_price"],
			"max_price": args["max_price"],
			"color":     args["color"],
			"size":      args["size"],
		}
		return mcp.NewToolResultText(s.shop.Search(catalog.ParseFilters(raw))), nil
	})

	// TOOL: add_to_cart
	s.mcpServer.AddTool(mcp.NewTool("add_to_cart",
		mcp.WithDescription("Resolve a spoken product reference and add it to the cart."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Shopping session id")),
		mcp.WithString("text", mcp.Required(), mcp.Description("How the customer referred to the product")),
		mcp.WithNumber("quantity", mcp.Description("How many to add; defaults to 1")),
		mcp.WithString("size", mcp.Description("Requested size, for sized products")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sessionID, err := request.RequireString("session_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		input, err := request.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		args := request.GetArguments()
		quantity := 1
		if q, ok := args["quantity"].(float64); ok {
			quantity = int(q)
		}
		size, _ := args["size"].(string)

		text, err := s.withSession(ctx, sessionID, func(sess *domain.Session) string {
			return s.shop.AddToCart(sess, input, quantity, size).Text
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("add failed: %v", err)), nil
		}
		return mcp.NewToolResultText(text), nil
	})

	// TOOL: show_cart
	s.mcpServer.AddTool(mcp.NewTool("show_cart",
		mcp.WithDescription("Read back the cart contents and running total."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Shopping session id")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sessionID, err := request.RequireString("session_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		sess, err := s.sessions.Load(ctx, sessionID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
		}
		return mcp.NewToolResultText(s.shop.CartText(sess)), nil
	})

	// TOOL: clear_cart
	s.mcpServer.AddTool(mcp.NewTool("clear_cart",
		mcp.WithDescription("Empty the cart without placing an order."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Shopping session id")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sessionID, err := request.RequireString("session_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		text, err := s.withSession(ctx, sessionID, func(sess *domain.Session) string {
			return s.shop.ClearCart(sess)
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("clear failed: %v", err)), nil
		}
		return mcp.NewToolResultText(text), nil
	})

	// TOOL: place_order
	s.mcpServer.AddTool(mcp.NewTool("place_order",
		mcp.WithDescription("Turn the cart into a durable order. Fails whole, never partial."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Shopping session id")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sessionID, err := request.RequireString("session_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		text, err := s.withSession(ctx, sessionID, func(sess *domain.Session) string {
			return s.shop.PlaceOrder(ctx, sess).Text
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("order failed: %v", err)), nil
		}
		return mcp.NewToolResultText(text), nil
	})

	// TOOL: show_last_order
	s.mcpServer.AddTool(mcp.NewTool("show_last_order",
		mcp.WithDescription("Read back the most recently placed order on record."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(s.shop.LastOrderText(ctx)), nil
	})
}

func (s *Server) registerResources() {
	// EXPOSE: parley://world
	s.mcpServer.AddResource(mcp.NewResource("parley://world", "Adventure World Definition",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.gm.World().Scenes())
		if err != nil {
			return nil, fmt.Errorf("failed to encode world: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "parley://world",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})

	// EXPOSE: parley://catalog
	s.mcpServer.AddResource(mcp.NewResource("parley://catalog", "Product Catalog",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.shop.Catalog().Products())
		if err != nil {
			return nil, fmt.Errorf("failed to encode catalog: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "parley://catalog",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
