package web

import (
	"context"
	"encoding/json"
	"io"

	"github.com/a-h/templ"
)

// Game renders the play surface: emoji puzzle, countdown, answer input with
// an optional speech-to-text hook, the reveal panel, and the ready button.
// Speech input degrades to the plain text box when the API is unavailable or
// permission is denied.
func Game(roomCode string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		code, err := json.Marshal(roomCode)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Emoji Songs — Game</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">Emoji Songs</span>
        <div id="scoreboard" class="scoreboard"></div>
        <div id="countdown" class="countdown"></div>
      </header>

      <section class="panel">
        <div id="emoji" class="emoji-display"></div>
        <div id="puzzleType" class="puzzle-type"></div>
        <ul id="clues" class="clue-list"></ul>
      </section>

      <section class="panel" id="answerPanel">
        <form id="answerForm" class="join-form">
          <input id="answerInput" name="answer" placeholder="Your answer" autocomplete="off"/>
          <button type="button" id="micBtn" class="secondary" hidden>🎤</button>
          <button type="submit" class="primary">Guess</button>
        </form>
        <div id="answerResult" class="result"></div>
      </section>

      <section class="panel" id="revealPanel" hidden>
        <h2 id="revealTitle"></h2>
        <p id="revealAnswer" class="reveal-answer"></p>
        <p id="revealLinks"></p>
        <button id="readyBtn" class="primary">Ready for the next one</button>
        <div id="readyStatus" class="result"></div>
      </section>

      <section class="panel" id="finishedPanel" hidden>
        <h2>Game over</h2>
        <p id="finalResult"></p>
        <a href="/">Back to start</a>
      </section>
    </main>

    <script>
`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "      const roomCode = "+string(code)+";\n"); err != nil {
			return err
		}
		_, err = io.WriteString(w, `
      const stored = JSON.parse(sessionStorage.getItem("es:" + roomCode) || "{}");
      let snapshot = null;
      let countdownTimer = null;

      const answerForm = document.getElementById("answerForm");
      const answerInput = document.getElementById("answerInput");
      const answerResult = document.getElementById("answerResult");
      const micBtn = document.getElementById("micBtn");

      answerForm.addEventListener("submit", async (event) => {
        event.preventDefault();
        const answer = answerInput.value;
        if (!answer.trim()) return;
        const res = await fetch("/api/rooms/" + roomCode + "/answers", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({
            player_id: stored.player_id,
            token: stored.token,
            answer,
          }),
        });
        const data = await res.json();
        if (!res.ok) {
          answerResult.textContent = data.error || "Could not submit answer.";
          return;
        }
        answerResult.textContent = data.correct ? "Correct!" : "Not it — try again.";
        if (data.correct) answerInput.value = "";
      });

      document.getElementById("readyBtn").addEventListener("click", async () => {
        const res = await fetch("/api/rooms/" + roomCode + "/ready", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({ player_id: stored.player_id, token: stored.token }),
        });
        if (res.ok) {
          document.getElementById("readyStatus").textContent = "Waiting for the other player…";
        }
      });

      // Speech-to-text: vendor-prefixed where supported, hidden otherwise.
      const SpeechRecognition = window.SpeechRecognition || window.webkitSpeechRecognition;
      if (SpeechRecognition) {
        micBtn.hidden = false;
        const recognition = new SpeechRecognition();
        recognition.lang = "en-US";
        recognition.interimResults = false;
        recognition.maxAlternatives = 1;
        let listening = false;
        micBtn.addEventListener("click", () => {
          if (listening) {
            recognition.stop();
            return;
          }
          try {
            recognition.start();
            listening = true;
            micBtn.textContent = "🔴";
          } catch (err) {
            answerResult.textContent = "Microphone unavailable — type your answer instead.";
          }
        });
        recognition.onresult = (event) => {
          answerInput.value = event.results[0][0].transcript;
          answerForm.requestSubmit();
        };
        recognition.onerror = (event) => {
          if (event.error === "not-allowed") {
            answerResult.textContent = "Microphone permission denied — type your answer instead.";
          }
        };
        recognition.onend = () => {
          listening = false;
          micBtn.textContent = "🎤";
        };
      }

      function startCountdown(endsAt) {
        clearInterval(countdownTimer);
        const el = document.getElementById("countdown");
        if (!endsAt) {
          el.textContent = "";
          return;
        }
        const deadline = new Date(endsAt).getTime();
        let reported = false;
        countdownTimer = setInterval(() => {
          const remaining = Math.max(0, Math.ceil((deadline - Date.now()) / 1000));
          el.textContent = remaining + "s";
          if (remaining === 0 && !reported) {
            reported = true;
            clearInterval(countdownTimer);
            fetch("/api/rooms/" + roomCode + "/timeout", {
              method: "POST",
              headers: { "Content-Type": "application/json" },
              body: JSON.stringify({
                player_id: stored.player_id,
                token: stored.token,
                puzzle_index: snapshot ? snapshot.current_puzzle_index : 0,
              }),
            });
          }
        }, 250);
      }

      function render(next) {
        snapshot = next;
        const playing = next.status === "playing" && next.game_state === "playing";
        const showing = next.game_state === "showing_answer";
        const finished = next.status === "finished";

        const scores = (next.players || [])
          .map((p) => p.name + ": " + p.score)
          .join("  ·  ");
        document.getElementById("scoreboard").textContent =
          scores + "  (first to " + next.win_score + ")";

        if (next.puzzle) {
          document.getElementById("emoji").textContent = next.puzzle.emoji;
          document.getElementById("puzzleType").textContent = "Guess the " + next.puzzle.type;
          const clueList = document.getElementById("clues");
          clueList.innerHTML = "";
          (next.puzzle.clues || []).forEach((clue) => {
            const item = document.createElement("li");
            item.textContent = clue;
            clueList.appendChild(item);
          });
        }

        document.getElementById("answerPanel").hidden = !playing;
        document.getElementById("revealPanel").hidden = !showing || finished;
        document.getElementById("finishedPanel").hidden = !finished;

        if (playing) {
          startCountdown(next.round_ends_at);
          document.getElementById("readyStatus").textContent = "";
        } else {
          startCountdown(null);
        }

        if (showing && next.puzzle) {
          const winner = next.round_winner;
          document.getElementById("revealTitle").textContent = winner
            ? winner + " got it!"
            : "Time's up!";
          document.getElementById("revealAnswer").textContent = next.puzzle.display_answer || "";
          const links = document.getElementById("revealLinks");
          links.innerHTML = "";
          (next.puzzle.links || []).forEach((href) => {
            const a = document.createElement("a");
            a.href = href;
            a.target = "_blank";
            a.rel = "noopener";
            a.textContent = href;
            links.appendChild(a);
            links.appendChild(document.createTextNode(" "));
          });
        }

        if (finished) {
          const winner = next.game_winner;
          document.getElementById("finalResult").textContent = winner
            ? winner + " wins!"
            : "It's a draw.";
        }
      }

      const proto = window.location.protocol === "https:" ? "wss" : "ws";
      const role = stored.player_id ? "joiner" : "spectator";
      const ws = new WebSocket(
        proto + "://" + window.location.host + "/ws/rooms/" + roomCode + "?role=" + role
      );
      ws.onmessage = (event) => render(JSON.parse(event.data));
    </script>
  </body>
</html>`)
		return err
	})
}
