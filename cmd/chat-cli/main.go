package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"hotel-chat-backend/internal/chatclient"
	"hotel-chat-backend/internal/fallback"

	"github.com/joho/godotenv"
)

// chat-cli is a terminal guest client for the concierge API. Useful for
// poking the webhook wiring without the web frontend.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	baseURL := flag.String("api", "http://localhost:82", "concierge API base URL")
	flag.Parse()

	client := chatclient.NewClient(*baseURL, 30*time.Second)
	session := chatclient.NewSession(client, client, fallback.ClassifierFromEnv())

	printLatest(session, 0)
	fmt.Println("(type a question, /reset to start over, /quit to leave)")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "/quit":
			session.Leave()
			return
		case "/reset":
			session.Reset()
			printLatest(session, 0)
			continue
		}

		seen := len(session.Messages())
		err := session.SendMessage(context.Background(), line)
		if errors.Is(err, chatclient.ErrEmptyMessage) {
			continue
		}
		if err != nil {
			fmt.Printf("! %v\n", err)
			continue
		}

		printLatest(session, seen)

		messages := session.Messages()
		last := messages[len(messages)-1]
		if last.TriggersContactForm && last.ContactForm != nil {
			promptContactForm(scanner, last.ContactForm)
		}
	}
}

func printLatest(session *chatclient.Session, seen int) {
	for _, message := range session.Messages()[seen:] {
		prefix := "concierge"
		if message.Role == chatclient.RoleUser {
			prefix = "you"
		}
		fmt.Printf("[%s] %s\n", prefix, message.Content)
	}
}

func promptContactForm(scanner *bufio.Scanner, form *chatclient.ContactForm) {
	fmt.Println("Leave your contact details so our team can get back to you (empty name to skip).")

	fmt.Print("name: ")
	if !scanner.Scan() {
		return
	}
	name := strings.TrimSpace(scanner.Text())
	if name == "" {
		return
	}
	form.SetName(name)

	fmt.Print("phone: ")
	if !scanner.Scan() {
		return
	}
	form.SetPhone(strings.TrimSpace(scanner.Text()))

	fmt.Print("email: ")
	if !scanner.Scan() {
		return
	}
	form.SetEmail(strings.TrimSpace(scanner.Text()))

	if err := form.Submit(context.Background()); err != nil {
		fmt.Printf("! %v\n", err)
		return
	}
	fmt.Println("Information has been sent successfully! A representative will contact you shortly.")
}
