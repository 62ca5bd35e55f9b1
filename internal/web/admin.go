package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Admin renders the puzzle library editor over the /api/puzzles endpoints.
func Admin() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Emoji Songs — Admin</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">Admin</span>
        <h1>Puzzle library</h1>
      </header>

      <section class="panel">
        <h2>Add a puzzle</h2>
        <form id="puzzleForm" class="admin-form">
          <input type="hidden" name="id"/>
          <select name="type" required></select>
          <input name="emoji" placeholder="Emoji" required/>
          <input name="clue1" placeholder="Clue 1" required/>
          <input name="clue2" placeholder="Clue 2" required/>
          <input name="clue3" placeholder="Clue 3" required/>
          <input name="answers" placeholder="Accepted answers (comma separated)" required/>
          <input name="display_answer" placeholder="Display answer" required/>
          <input name="video_url" placeholder="Video URL (optional)"/>
          <input name="links" placeholder="Links (comma separated, optional)"/>
          <button type="submit" class="primary">Save puzzle</button>
          <button type="button" id="resetForm" class="secondary">Clear</button>
        </form>
        <div id="formResult" class="result"></div>
      </section>

      <section class="panel">
        <h2>Library</h2>
        <select id="typeFilter">
          <option value="">All types</option>
        </select>
        <table class="admin-table">
          <thead>
            <tr><th>Emoji</th><th>Type</th><th>Answer</th><th></th></tr>
          </thead>
          <tbody id="puzzleRows"></tbody>
        </table>
        <div class="pager">
          <button id="prevPage" class="secondary">Prev</button>
          <span id="pageLabel"></span>
          <button id="nextPage" class="secondary">Next</button>
        </div>
      </section>
    </main>

    <script>
      const form = document.getElementById("puzzleForm");
      const formResult = document.getElementById("formResult");
      const rows = document.getElementById("puzzleRows");
      const typeFilter = document.getElementById("typeFilter");
      let page = 1;
      let totalPages = 1;
      let puzzles = [];

      async function loadTypes() {
        const res = await fetch("/api/puzzles/types");
        const data = await res.json();
        const select = form.elements.type;
        (data.types || []).forEach((type) => {
          select.add(new Option(type, type));
          typeFilter.add(new Option(type, type));
        });
      }

      async function loadPuzzles() {
        const params = new URLSearchParams({ page: String(page) });
        if (typeFilter.value) params.set("type", typeFilter.value);
        const res = await fetch("/api/puzzles?" + params);
        const data = await res.json();
        puzzles = data.puzzles || [];
        totalPages = Math.max(1, Math.ceil((data.total || 0) / (data.per_page || 1)));
        document.getElementById("pageLabel").textContent = page + " / " + totalPages;
        rows.innerHTML = "";
        puzzles.forEach((puzzle) => {
          const tr = document.createElement("tr");
          tr.innerHTML =
            "<td>" + puzzle.emoji + "</td><td>" + puzzle.type + "</td><td>" +
            puzzle.display_answer + "</td>";
          const actions = document.createElement("td");
          const edit = document.createElement("button");
          edit.textContent = "Edit";
          edit.addEventListener("click", () => fillForm(puzzle));
          const del = document.createElement("button");
          del.textContent = "Delete";
          del.addEventListener("click", () => deletePuzzle(puzzle.id));
          actions.append(edit, del);
          tr.appendChild(actions);
          rows.appendChild(tr);
        });
      }

      function fillForm(puzzle) {
        form.elements.id.value = puzzle.id;
        form.elements.type.value = puzzle.type;
        form.elements.emoji.value = puzzle.emoji;
        form.elements.clue1.value = (puzzle.clues || [])[0] || "";
        form.elements.clue2.value = (puzzle.clues || [])[1] || "";
        form.elements.clue3.value = (puzzle.clues || [])[2] || "";
        form.elements.answers.value = (puzzle.answers || []).join(", ");
        form.elements.display_answer.value = puzzle.display_answer;
        form.elements.video_url.value = puzzle.video_url || "";
        form.elements.links.value = (puzzle.links || []).join(", ");
      }

      async function deletePuzzle(id) {
        const res = await fetch("/api/puzzles/" + id, { method: "DELETE" });
        if (!res.ok) {
          const data = await res.json();
          formResult.textContent = data.error || "Failed to delete puzzle.";
          return;
        }
        loadPuzzles();
      }

      form.addEventListener("submit", async (event) => {
        event.preventDefault();
        const id = form.elements.id.value;
        const payload = {
          type: form.elements.type.value,
          emoji: form.elements.emoji.value,
          clues: [
            form.elements.clue1.value,
            form.elements.clue2.value,
            form.elements.clue3.value,
          ],
          answers: form.elements.answers.value.split(",").map((s) => s.trim()).filter(Boolean),
          display_answer: form.elements.display_answer.value,
          video_url: form.elements.video_url.value,
          links: form.elements.links.value.split(",").map((s) => s.trim()).filter(Boolean),
        };
        const res = await fetch(id ? "/api/puzzles/" + id : "/api/puzzles", {
          method: id ? "PUT" : "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify(payload),
        });
        const data = await res.json();
        if (!res.ok) {
          formResult.textContent = data.error || "Failed to save puzzle.";
          return;
        }
        formResult.textContent = "Saved.";
        form.reset();
        form.elements.id.value = "";
        loadPuzzles();
      });

      document.getElementById("resetForm").addEventListener("click", () => {
        form.reset();
        form.elements.id.value = "";
        formResult.textContent = "";
      });
      document.getElementById("prevPage").addEventListener("click", () => {
        if (page > 1) { page--; loadPuzzles(); }
      });
      document.getElementById("nextPage").addEventListener("click", () => {
        if (page < totalPages) { page++; loadPuzzles(); }
      });
      typeFilter.addEventListener("change", () => { page = 1; loadPuzzles(); });

      loadTypes().then(loadPuzzles);
    </script>
  </body>
</html>`)
		return err
	})
}
