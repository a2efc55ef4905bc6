package bridge

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NoResponseText はボットの返答が空だった場合に返すテキストです
const NoResponseText = "No response from Lex"

// TextBot は自由入力のテキストを解釈するボットです
type TextBot interface {
	PostText(ctx context.Context, userID, text string) (string, error)
}

type unstructured struct {
	Text string `json:"text"`
}

type chatMessage struct {
	Type         string       `json:"type,omitempty"`
	Unstructured unstructured `json:"unstructured"`
}

// ChatRequest はチャット画面から送られるリクエストです
type ChatRequest struct {
	Messages []chatMessage `json:"messages"`
	UserID   string        `json:"userId,omitempty"`
}

// ChatResponse はチャット画面に返すレスポンスです
type ChatResponse struct {
	Messages []chatMessage `json:"messages"`
}

// Handler はチャット画面とボットの間を中継します
type Handler struct {
	bot           TextBot
	defaultUserID string
}

// NewHandler は新しいHandlerを作成します
func NewHandler(bot TextBot, defaultUserID string) *Handler {
	return &Handler{bot: bot, defaultUserID: defaultUserID}
}

// NewRouter はミドルウェアとルートを登録したルーターを作成します
func NewRouter(h *Handler, serviceName string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Logging())
	r.Use(Tracing(serviceName))
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/chatbot", h.Chat)

	return r
}

// Chat は最初のメッセージのテキストをボットに渡し、返答をチャット画面の形式で返します
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Messages) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	text := strings.TrimSpace(req.Messages[0].Unstructured.Text)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No message provided"})
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = h.defaultUserID
	}

	ctx, seg := xray.BeginSubsegment(c.Request.Context(), "Handler.Chat")
	defer seg.Close(nil)

	reply, err := h.bot.PostText(ctx, userID, text)
	if err != nil {
		seg.Close(err)
		log.Printf("request_id=%s Failed to post text: %v", RequestIDFromContext(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if reply == "" {
		reply = NoResponseText
	}

	c.JSON(http.StatusOK, ChatResponse{
		Messages: []chatMessage{{
			Type:         "unstructured",
			Unstructured: unstructured{Text: reply},
		}},
	})
}
